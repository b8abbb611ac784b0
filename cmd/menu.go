package cmd

import (
	"os"

	"fevertracker/core/session"
	"fevertracker/logger"

	"github.com/spf13/cobra"
)

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.catalog.Watch(cmd.Context()); err != nil {
		// Listing on every call still works without the watcher.
		logger.Warn("catalog watcher unavailable", logger.ErrorField(err))
	}
	logger.Info("session started", logger.String("tracks_dir", a.cfg.TracksDir))
	return session.New(os.Stdin, cmd.OutOrStdout(), a.catalog, a.repo, a.exporter).Run()
}

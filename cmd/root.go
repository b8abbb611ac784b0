package cmd

import (
	"fmt"
	"os"

	"fevertracker/config"
	"fevertracker/core/catalog"
	"fevertracker/core/export"
	"fevertracker/logger"
	"fevertracker/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// app bundles the collaborators every command works with.
type app struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	repo     repository.TrackRepository
	exporter *export.Exporter
}

// newApp loads configuration, starts logging and makes sure the storage
// directories exist.
func newApp() (*app, error) {
	cfg := config.Load()
	if err := logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   true,
		Console:    cfg.LogConsole,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialise logging: %w", err)
	}
	logger.WithSession(uuid.New().String())

	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create storage directories: %w", err)
	}
	return &app{
		cfg:      cfg,
		catalog:  catalog.New(cfg.TracksDir),
		repo:     repository.NewCSVTrackRepository(cfg.TracksDir, nil),
		exporter: export.NewExporter(cfg.DocumentsDir),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "fevertracker",
	Short: "Fever Tracker records temperature, medicine and dose per patient.",
	Long: `Fever Tracker keeps one track per patient and day in the tracks directory,
shows it as a table and converts it to a printable PDF.

Run without a subcommand to use the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

// Execute executes the root command.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logger.Sync()
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"strconv"

	"fevertracker/core/catalog"
	"fevertracker/core/chart"
	"fevertracker/core/render"
	"fevertracker/logger"
	"fevertracker/model"

	"github.com/cli/browser"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracks with their selection numbers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ids, err := a.catalog.Tracks()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tracks found")
			return nil
		}
		for i, id := range ids {
			fmt.Fprintf(cmd.OutOrStdout(), "%d -> %s\n", i+1, id.Display())
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <number>",
	Short: "Print a track as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := selectTrack(args[0])
		if err != nil {
			return err
		}
		rows, err := a.repo.ReadRows(id.Path)
		if err != nil {
			return err
		}
		return render.Render(cmd.OutOrStdout(), rows)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <number>",
	Short: "Convert a track to a PDF document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := selectTrack(args[0])
		if err != nil {
			return err
		}
		readings, err := a.repo.ReadAll(id.Path)
		if err != nil {
			return err
		}
		out, err := a.exporter.Export(readings, id.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "You can find %s\n", out)
		return openFile(cmd, out)
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart <number>",
	Short: "Draw a track's temperature curve as an HTML page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, id, err := selectTrack(args[0])
		if err != nil {
			return err
		}
		readings, err := a.repo.ReadAll(id.Path)
		if err != nil {
			return err
		}
		out, err := (&chart.Writer{Dir: a.cfg.ChartsDir}).Write(readings, id.Path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "You can find %s\n", out)
		return openFile(cmd, out)
	},
}

// selectTrack resolves a 1-based track number given on the command line.
func selectTrack(arg string) (*app, model.TrackID, error) {
	a, err := newApp()
	if err != nil {
		return nil, model.TrackID{}, err
	}
	index, err := strconv.Atoi(arg)
	if err != nil {
		return nil, model.TrackID{}, fmt.Errorf("track number must be a number: %q", arg)
	}
	ids, err := a.catalog.Tracks()
	if err != nil {
		return nil, model.TrackID{}, err
	}
	id, err := catalog.Resolve(ids, index)
	if err != nil {
		return nil, model.TrackID{}, err
	}
	return a, id, nil
}

// openFile opens path with the system viewer when the command's --open flag is set.
func openFile(cmd *cobra.Command, path string) error {
	open, err := cmd.Flags().GetBool("open")
	if err != nil || !open {
		return err
	}
	if err := browser.OpenFile(path); err != nil {
		logger.Warn("failed to open file", logger.String("path", path), logger.ErrorField(err))
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, exportCmd, chartCmd)

	exportCmd.Flags().BoolP("open", "o", false, "open the document once written")
	chartCmd.Flags().BoolP("open", "o", false, "open the chart once written")

	exportCmd.Example = `  # export the second track listed by "fevertracker list"
  fevertracker export 2 --open`
}

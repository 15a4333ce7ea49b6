package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/chart"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/spf13/cobra"
)

// defaultChartFile is written when --output-file is not given.
const defaultChartFile = "daily_requests.png"

// chartCmd renders daily request volume.
var chartCmd = &cobra.Command{
	Use:   "chart [file]",
	Short: "Render daily request volume as a PNG line chart.",
	Long: `Plot how many requests were logged per day in the selected view.

With --start and --end every day of the range gets a point, including days
without requests. Without a range the chart spans the first to last logged day.

Examples:
  # Chart the record store
  reportboard chart

  # Chart the last month of a spreadsheet to a custom file
  reportboard chart logs.xlsx --start "1 month ago" --end today --output-file month.png`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runChart(rootCtx); err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}

func runChart(ctx context.Context) error {
	session, err := loadSession(ctx)
	if err != nil {
		return err
	}
	view, err := core.Apply(session, cfg.Request())
	if err != nil {
		return err
	}
	if err := chart.CheckWindow(view.Window()); err != nil {
		return err
	}

	path := cfg.OutputFile
	if path == "" {
		path = defaultChartFile
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	title := "Daily Requests"
	if view.Category() != "" && !core.IsAllCategories(view.Category()) {
		title = fmt.Sprintf("Daily Requests (%s)", view.Category())
	}
	if err := chart.DailyVolume(file, view.DailyCounts(), chart.Options{Title: title}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stderr, "💾 Wrote chart to %s\n", path)
	return err
}

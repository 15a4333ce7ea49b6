package cmd

import (
	"context"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/outwriter"
	"github.com/spf13/cobra"
)

// reportCmd prints the metrics and records of the selected view.
var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Show request metrics for a date range and category.",
	Long: `Summarize request logs from a CSV/XLSX file or the record store.

Without --start and --end the report is an overview of every record.
With a date range it also compares against the period of the same length
that ends the day before --start, so you can see whether things improved:
- Total requests and success rate
- Average, fastest and slowest response time
- Failed requests

Matched records are paged with --page and --page-size.

Examples:
  # Overview of the record store
  reportboard report

  # Last week of an exported spreadsheet, payments only
  reportboard report logs.xlsx --start "7 days ago" --end today --category payments

  # Second page of matched records as JSON
  reportboard report logs.csv --start 2024-01-01 --end 2024-01-31 --page 2 --output json

  # Reject files with malformed rows
  reportboard report logs.csv --import-mode strict --required date,status,endpoint`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReport(rootCtx); err != nil {
			contract.LogFatal("Cannot build report", err)
		}
	},
}

func runReport(ctx context.Context) error {
	session, err := loadSession(ctx)
	if err != nil {
		return err
	}
	report, err := core.BuildReport(session, cfg.Request())
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(report, len(session.Issues()), cfg)
}

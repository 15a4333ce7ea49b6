package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/export"
	"github.com/huangsam/reportboard/schema"
	"github.com/spf13/cobra"
)

// exportCmd writes the matched records to a spreadsheet or columnar file.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export matched records to XLSX, Parquet or CSV.",
	Long: `Write every record of the selected view to a file, ignoring paging.

Formats (via --output):
- xlsx (default) with an "API Logs" sheet and a "Summary" sheet of metrics
- parquet with one optional column per field, dates as DATE
- csv with the original column headers

The file is named api_logs.<format> unless --output-file is given.

Examples:
  # Export everything in the record store as a workbook
  reportboard export

  # January failures for the auth category as Parquet
  reportboard export logs.csv --start 2024-01-01 --end 2024-01-31 --category auth --output parquet

  # Choose the file name
  reportboard export --output csv --output-file january.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExport(rootCtx); err != nil {
			contract.LogFatal("Cannot export records", err)
		}
	},
}

// exportMode maps --output to a file format; text means the default workbook.
func exportMode(mode schema.OutputMode) (schema.OutputMode, error) {
	switch {
	case mode == schema.TextOut:
		return schema.XLSXOut, nil
	case export.IsSupported(mode):
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, mode)
	}
}

func runExport(ctx context.Context) error {
	mode, err := exportMode(cfg.Output)
	if err != nil {
		return err
	}
	session, err := loadSession(ctx)
	if err != nil {
		return err
	}
	view, err := core.Apply(session, cfg.Request())
	if err != nil {
		return err
	}
	current, _, _ := view.Metrics()
	path, err := export.WriteFile(cfg.OutputFile, mode, export.Dataset{
		Fields:  view.Fields(),
		Records: view.Matched(),
		Metrics: current,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stderr, "💾 Exported %d records to %s\n", len(view.Matched()), path)
	return err
}

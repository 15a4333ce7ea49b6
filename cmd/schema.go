package cmd

import (
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/outwriter"
	"github.com/spf13/cobra"
)

// schemaCmd shows the discovered fields of a source.
var schemaCmd = &cobra.Command{
	Use:   "schema [file]",
	Short: "Show the fields discovered in a file or the record store.",
	Long: `List every column with its record key, inferred kind and role.

Roles tell you which columns drive the report:
- date filters by range
- category filters by dropdown value
- status decides success (200, ok or success)
- response_time feeds the latency metrics

Rows skipped during a lenient import are listed with their reason.

Examples:
  # Inspect a spreadsheet before reporting on it
  reportboard schema logs.xlsx

  # Check what strict mode would reject
  reportboard schema logs.csv --import-mode strict

  # Machine-readable field list
  reportboard schema --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		session, err := loadSession(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot discover schema", err)
		}
		if err := outwriter.NewOutWriter().WriteSchema(session.Summary(), cfg); err != nil {
			contract.LogFatal("Cannot write schema", err)
		}
	},
}

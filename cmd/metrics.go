package cmd

import (
	"os"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/outwriter"
	"github.com/spf13/cobra"
)

// metricsCmd displays the definitions of all report metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display how each report metric is computed",
	Long: `Show every metric in the report with its unit, which direction counts
as an improvement, and how it is computed.

No records are read, this is purely informational.

Examples:
  # Show metric definitions
  reportboard metrics

  # As JSON for documentation tooling
  reportboard metrics --output json`,
	Args:    cobra.NoArgs,
	PreRunE: metricsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.WriteMetricDefinitions(os.Stdout, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}

// metricsSetupWrapper validates config without touching the record store.
func metricsSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := unmarshalConfig(nil); err != nil {
		return err
	}
	return contract.ProcessAndValidate(cfg, input)
}

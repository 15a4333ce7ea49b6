// Package cmd defines the command-line interface for reportboard.
package cmd

import (
	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dbCmd)

	// Add the db subcommands to the parent db command
	dbCmd.AddCommand(dbStatusCmd)
	dbCmd.AddCommand(dbClearCmd)
	dbCmd.AddCommand(dbSeedCmd)
	dbCmd.AddCommand(dbMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("start", "", "Start date as YYYY-MM-DD, RFC3339 or time ago (requires --end)")
	rootCmd.PersistentFlags().String("end", "", "End date as YYYY-MM-DD, RFC3339 or time ago (requires --start)")
	rootCmd.PersistentFlags().StringP("category", "c", schema.AllCategories, "Category to report on (case-insensitive), or all")
	rootCmd.PersistentFlags().Int("page", 1, "Page of matched records to display")
	rootCmd.PersistentFlags().Int("page-size", contract.DefaultPageSize, "Records per page")
	rootCmd.PersistentFlags().String("import-mode", string(schema.LenientImport), "Malformed row policy: lenient or strict")
	rootCmd.PersistentFlags().String("required", contract.DefaultRequired, "Comma-separated fields that must hold a value in strict mode")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json (export: xlsx or parquet or csv)")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored deltas in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("listen", contract.DefaultListen, "Address for the HTTP API to listen on")
	serveCmd.Flags().String("cors-origins", contract.DefaultCORSOrigins, "Comma-separated origins allowed to call the API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of dbSeedCmd to Viper
	dbSeedCmd.Flags().Int("records", contract.DefaultSeedRecords, "Number of sample request logs to generate")
	dbSeedCmd.Flags().Int("days", contract.DefaultSeedDays, "Spread sample dates over this many past days")
	dbSeedCmd.Flags().Uint64("seed", 0, "Random seed for reproducible samples (0 = random)")
	if err := viper.BindPFlags(dbSeedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding db seed flags", err)
	}

	// Bind all flags of dbMigrateCmd to Viper
	dbMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(dbMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding db migrate flags", err)
	}
}

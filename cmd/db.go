package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/internal/datastore"
	"github.com/huangsam/reportboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// dbBackendConfig reads and validates the store settings without the full shared setup.
func dbBackendConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("backend"))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr
	return nil
}

// dbSetup loads minimal configuration needed for record store operations.
func dbSetup() error {
	if err := dbBackendConfig(); err != nil {
		return err
	}
	if err := datastore.InitStore(cfg.Backend, cfg.DBConnect); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}
	return nil
}

// dbSetupWrapper wraps dbSetup to provide PreRunE for db commands.
func dbSetupWrapper(_ *cobra.Command, _ []string) error {
	return dbSetup()
}

// dbMigrateSetupWrapper validates store settings but leaves the store uninitialized,
// so migrations can run on a fresh database.
func dbMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return dbBackendConfig()
}

// dbCmd focused on record store management.
//
// Note: db subcommands skip sharedSetup. They need no date range or input
// file and should work even when report settings are invalid.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the request log store",
	Long: `Manage the database that holds request logs for reports without a file.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (always empty)

Subcommands:
  status  - Show row counts and connection info
  clear   - Remove all stored request logs
  seed    - Insert generated sample request logs
  migrate - Run database schema migrations

Examples:
  # Fill the default SQLite store with sample data and report on it
  reportboard db seed --records 1000
  reportboard report

  # Check a PostgreSQL store (set connection string via env variable)
  REPORTBOARD_BACKEND=postgresql REPORTBOARD_DB_CONNECT="..." reportboard db status`,
}

// dbStatusCmd shows store status.
var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record store statistics and connection details",
	Long: `Show the backend, connection state, number of stored request logs and
the oldest and newest request dates.`,
	PreRunE: dbSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := datastore.Manager.GetRecordStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		datastore.PrintStoreStatus(os.Stdout, status)
	},
}

// dbClearCmd clears the store.
var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored request logs",
	Long: `Delete all request logs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the request log table

Examples:
  # Clear SQLite store (default)
  reportboard db clear`,
	PreRunE: dbMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := datastore.ClearRecords(cfg.Backend, contract.GetDBFilePath(), cfg.DBConnect); err != nil {
			contract.LogFatal("Failed to clear records", err)
		}
		fmt.Println("Request logs cleared successfully.")
	},
}

// dbSeedCmd inserts sample data.
var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert generated sample request logs",
	Long: `Generate realistic request logs spread over the past --days days and
insert them into the store. Use --seed for a reproducible data set.

Examples:
  # 500 logs over the last 30 days
  reportboard db seed

  # The same 2000 logs on every run
  reportboard db seed --records 2000 --days 90 --seed 42`,
	PreRunE: dbSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		records, days := viper.GetInt("records"), viper.GetInt("days")
		if records < 1 || days < 1 {
			contract.LogFatal("Invalid seed options", fmt.Errorf("records and days must be positive (received %d, %d)", records, days))
		}
		seed := viper.GetUint64("seed")
		if seed == 0 {
			seed = rand.Uint64()
		}
		rng := rand.New(rand.NewPCG(seed, seed))

		written, err := datastore.Seed(rootCtx, datastore.Manager.GetRecordStore(), records, days, time.Now(), rng)
		if err != nil {
			contract.LogFatal("Failed to seed records", err)
		}
		fmt.Printf("Inserted %d request logs (seed %d).\n", written, seed)
	},
}

// dbMigrateCmd runs database migrations for the record store.
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the request log store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  reportboard db migrate

  # Rollback to initial state
  reportboard db migrate --target-version 0`,
	PreRunE: dbMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := datastore.MigrateStore(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations applied successfully.")
	},
}

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/iostore"
	"github.com/huangsam/readiness/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromViper resolves and validates the history backend settings.
func historyBackendFromViper() (schema.DatabaseBackend, string, error) {
	backendStr := strings.ToLower(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as the default SQLite store
	backend := schema.SQLiteBackend
	if backendStr != "" {
		backend = schema.DatabaseBackend(backendStr)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config
	if err := iostore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on assessment history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup used by scoring commands. This skips answer sheet and
// delivery validation for simple history operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage assessment history and exports",
	Long: `Manage the history of scored assessments.

When enabled, Readiness records every scoring run, storing:
- Run metadata (timestamp, respondent, configuration, duration)
- The overall score and label
- Every control score with its raw answers
- Every domain score

This enables progress tracking between assessments and export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Check history status
  readiness history status

  # Export for analysis in pandas/DuckDB
  readiness history export --output-file readiness.parquet`,
}

// historyClearCmd clears the assessment history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all assessment history",
	Long: `Delete all stored assessment runs and their scores.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  readiness history export --output-file backup.parquet
  readiness history clear`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ClearHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear assessment history", err)
		}
		fmt.Println("Assessment history cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the assessment history.

Displays:
- Backend type and connection status
- Total number of runs stored
- Last and oldest run timestamps
- The last overall score and its label
- Database table sizes

Examples:
  # Check history status
  readiness history status

  # Check a shared PostgreSQL history
  readiness history status --history-backend postgresql --history-db-connect "host=db user=readiness dbname=readiness"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iostore.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iostore.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessment history to Parquet for BI tools and analytics",
	Long: `Export all stored assessment data to Parquet format for use with analytics tools.

Exports three datasets next to --output-file:
- <file>.assessment_runs.parquet - one row per scoring run
- <file>.control_scores.parquet  - control scores with their answers
- <file>.domain_scores.parquet   - domain scores and labels

Requires: --output-file parameter

Examples:
  # Export all data
  readiness history export --output-file readiness.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT domain_name, avg(score) FROM read_parquet('readiness.parquet.domain_scores.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExecuteHistoryExport(os.Stdout, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export assessment history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  readiness history migrate

  # Migrate to specific version
  readiness history migrate --target-version 1

  # Rollback everything
  readiness history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		msg, err := iostore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion)
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println(msg)
	},
}

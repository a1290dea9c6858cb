package iostore

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/readiness/internal/parquet"
)

// ExecuteHistoryExport writes every stored run and score to Parquet files
// named after outputFile, one file per history table.
func ExecuteHistoryExport(w io.Writer, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no assessment history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total assessment runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve assessment runs: %w", err)
	}
	controls, err := store.GetAllControlScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve control scores: %w", err)
	}
	domains, err := store.GetAllDomainScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve domain scores: %w", err)
	}

	runsFile := outputFile + ".assessment_runs.parquet"
	parquetRuns := parquet.ConvertAssessmentRunRecords(runs)
	if err := parquet.WriteAssessmentRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write assessment runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d assessment runs to: %s\n", len(parquetRuns), runsFile)

	controlsFile := outputFile + ".control_scores.parquet"
	parquetControls := parquet.ConvertControlScoreRecords(controls)
	if err := parquet.WriteControlScoresParquet(parquetControls, controlsFile); err != nil {
		return fmt.Errorf("failed to write control scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d control score records to: %s\n", len(parquetControls), controlsFile)

	domainsFile := outputFile + ".domain_scores.parquet"
	parquetDomains := parquet.ConvertDomainScoreRecords(domains)
	if err := parquet.WriteDomainScoresParquet(parquetDomains, domainsFile); err != nil {
		return fmt.Errorf("failed to write domain scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d domain score records to: %s\n", len(parquetDomains), domainsFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be loaded with DuckDB, Pandas or Spark.")
	return nil
}

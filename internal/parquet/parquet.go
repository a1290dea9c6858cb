// Package parquet exports assessment history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/readiness/schema"
	"github.com/parquet-go/parquet-go"
)

// AssessmentRun maps to the readiness_assessment_runs table.
type AssessmentRun struct {
	RunID          int64      `parquet:"run_id,snappy"`
	StartTime      time.Time  `parquet:"start_time,snappy"`
	EndTime        *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs  *int32     `parquet:"run_duration_ms,optional,snappy"`
	Company        string     `parquet:"company,snappy,dict"`
	RespondentRole string     `parquet:"respondent_role,snappy,dict"`

	// OverallScore and OverallStatus stay null for runs that never finished
	OverallScore  *float64 `parquet:"overall_score,optional,snappy"`
	OverallStatus *string  `parquet:"overall_status,optional,snappy,dict"`

	TotalControls int32   `parquet:"total_controls,snappy"`
	ConfigParams  *string `parquet:"config_params,optional,snappy"`
}

// ControlScore maps to the readiness_control_scores table.
type ControlScore struct {
	RunID       int64     `parquet:"run_id,snappy"`
	Domain      string    `parquet:"domain_name,snappy,dict"`
	Control     string    `parquet:"control_name,snappy,dict"`
	Score       float64   `parquet:"score,snappy"`
	AnswerCount int32     `parquet:"answer_count,snappy"`
	ScoredAt    time.Time `parquet:"scored_at,snappy"`
}

// DomainScore maps to the readiness_domain_scores table.
type DomainScore struct {
	RunID         int64     `parquet:"run_id,snappy"`
	Domain        string    `parquet:"domain_name,snappy,dict"`
	Score         float64   `parquet:"score,snappy"`
	Status        string    `parquet:"status,snappy,dict"`
	ControlsCount int32     `parquet:"controls_count,snappy"`
	ScoredAt      time.Time `parquet:"scored_at,snappy"`
}

// writeParquet writes rows to a new file using the schema inferred from T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteAssessmentRunsParquet writes assessment runs to a Parquet file.
func WriteAssessmentRunsParquet(data []AssessmentRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteControlScoresParquet writes control scores to a Parquet file.
func WriteControlScoresParquet(data []ControlScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDomainScoresParquet writes domain scores to a Parquet file.
func WriteDomainScoresParquet(data []DomainScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertAssessmentRunRecords converts store records for Parquet export.
func ConvertAssessmentRunRecords(records []schema.AssessmentRunRecord) []AssessmentRun {
	result := make([]AssessmentRun, len(records))
	for i, record := range records {
		result[i] = AssessmentRun{
			RunID:          record.RunID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			Company:        record.Company,
			RespondentRole: record.RespondentRole,
			OverallScore:   record.OverallScore,
			OverallStatus:  record.OverallStatus,
			TotalControls:  record.TotalControls,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertControlScoreRecords converts store records for Parquet export.
func ConvertControlScoreRecords(records []schema.ControlScoreRecord) []ControlScore {
	result := make([]ControlScore, len(records))
	for i, record := range records {
		result[i] = ControlScore(record)
	}
	return result
}

// ConvertDomainScoreRecords converts store records for Parquet export.
func ConvertDomainScoreRecords(records []schema.DomainScoreRecord) []DomainScore {
	result := make([]DomainScore, len(records))
	for i, record := range records {
		result[i] = DomainScore(record)
	}
	return result
}

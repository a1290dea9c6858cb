package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/readiness/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBack[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{"runs", new(AssessmentRun), []string{
			"run_id", "start_time", "end_time", "run_duration_ms", "company",
			"respondent_role", "overall_score", "overall_status", "total_controls", "config_params",
		}},
		{"controls", new(ControlScore), []string{"run_id", "domain_name", "control_name", "score", "answer_count", "scored_at"}},
		{"domains", new(DomainScore), []string{"run_id", "domain_name", "score", "status", "controls_count", "scored_at"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			for _, col := range tt.columns {
				_, ok := s.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteAssessmentRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	start := time.Date(2026, time.March, 4, 15, 30, 0, 123, time.UTC)
	end := start.Add(2 * time.Second)
	duration := int32(2000)
	score := 62.5
	status := string(schema.PartiallyPrepared)
	config := `{"precision":1}`
	data := []AssessmentRun{
		{
			RunID: 1, StartTime: start, EndTime: &end, RunDurationMs: &duration,
			Company: "Acme", RespondentRole: "CTO", OverallScore: &score, OverallStatus: &status,
			TotalControls: 12, ConfigParams: &config,
		},
		{RunID: 2, StartTime: start, Company: "Globex"}, // never finished
	}

	require.NoError(t, WriteAssessmentRunsParquet(data, outputPath))
	got := readBack[AssessmentRun](t, outputPath)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].RunID)
	assert.WithinDuration(t, start, got[0].StartTime, time.Nanosecond)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, end, *got[0].EndTime, time.Nanosecond)
	require.NotNil(t, got[0].OverallScore)
	assert.InDelta(t, score, *got[0].OverallScore, 0.001)
	assert.Equal(t, status, *got[0].OverallStatus)
	assert.Equal(t, config, *got[0].ConfigParams)
	assert.Equal(t, "CTO", got[0].RespondentRole)

	assert.Equal(t, "Globex", got[1].Company)
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].OverallScore)
	assert.Nil(t, got[1].OverallStatus)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWriteScoresParquet(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)

	controls := ConvertControlScoreRecords([]schema.ControlScoreRecord{
		{RunID: 1, Domain: "Security", Control: "Encryption", Score: 37.5, AnswerCount: 2, ScoredAt: at},
		{RunID: 1, Domain: "Privacy", Control: "Privacy Notice", Score: 100, AnswerCount: 1, ScoredAt: at},
	})
	controlsPath := filepath.Join(dir, "controls.parquet")
	require.NoError(t, WriteControlScoresParquet(controls, controlsPath))
	gotControls := readBack[ControlScore](t, controlsPath)
	require.Len(t, gotControls, len(controls))
	for i, want := range controls {
		assert.Equal(t, want.Control, gotControls[i].Control)
		assert.Equal(t, want.Domain, gotControls[i].Domain)
		assert.InDelta(t, want.Score, gotControls[i].Score, 0.001)
		assert.Equal(t, want.AnswerCount, gotControls[i].AnswerCount)
		assert.True(t, want.ScoredAt.Equal(gotControls[i].ScoredAt))
	}

	domains := ConvertDomainScoreRecords([]schema.DomainScoreRecord{
		{RunID: 1, Domain: "Security", Score: 37.5, Status: string(schema.NeedsImprovement), ControlsCount: 1, ScoredAt: at},
	})
	domainsPath := filepath.Join(dir, "domains.parquet")
	require.NoError(t, WriteDomainScoresParquet(domains, domainsPath))
	gotDomains := readBack[DomainScore](t, domainsPath)
	require.Len(t, gotDomains, 1)
	assert.Equal(t, "Security", gotDomains[0].Domain)
	assert.Equal(t, string(schema.NeedsImprovement), gotDomains[0].Status)
	assert.Equal(t, int32(1), gotDomains[0].ControlsCount)
	assert.True(t, at.Equal(gotDomains[0].ScoredAt))
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteDomainScoresParquet(nil, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size(), "file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteAssessmentRunsParquet([]AssessmentRun{{RunID: 1}}, "/nonexistent/directory/output.parquet")
	assert.Error(t, err)
}

func TestConvertAssessmentRunRecords(t *testing.T) {
	score := 80.0
	records := []schema.AssessmentRunRecord{{RunID: 7, Company: "Acme", OverallScore: &score, TotalControls: 3}}

	got := ConvertAssessmentRunRecords(records)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].RunID)
	assert.Equal(t, "Acme", got[0].Company)
	assert.Equal(t, &score, got[0].OverallScore)
	assert.Equal(t, int32(3), got[0].TotalControls)
}

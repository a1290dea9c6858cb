package schema

import "time"

// HistoryStatus represents the status of the assessment history store.
type HistoryStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalRuns       int              `json:"total_runs"`
	LastRunID       int64            `json:"last_run_id"`
	LastRunTime     time.Time        `json:"last_run_time"`
	OldestRunTime   time.Time        `json:"oldest_run_time"`
	TotalControls   int              `json:"total_controls"`
	LastOverall     float64          `json:"last_overall"`
	LastOverallText ReadinessLabel   `json:"last_overall_status"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

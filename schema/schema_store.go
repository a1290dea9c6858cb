package schema

import "time"

// AssessmentRunRecord represents a row from the readiness_assessment_runs table.
type AssessmentRunRecord struct {
	RunID          int64
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	Company        string
	RespondentRole string
	OverallScore   *float64
	OverallStatus  *string
	TotalControls  int32
	ConfigParams   *string
}

// ControlScoreRecord represents a row from the readiness_control_scores table.
type ControlScoreRecord struct {
	RunID       int64
	Domain      string
	Control     string
	Score       float64
	AnswerCount int32
	ScoredAt    time.Time
}

// DomainScoreRecord represents a row from the readiness_domain_scores table.
type DomainScoreRecord struct {
	RunID         int64
	Domain        string
	Score         float64
	Status        string
	ControlsCount int32
	ScoredAt      time.Time
}

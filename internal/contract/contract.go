// Package contract provides interfaces and shared utilities for the readiness internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/readiness/schema"
)

// StoreManager defines the interface for managing persistent stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for tracking scoring runs and their results.
type HistoryStore interface {
	// BeginRun creates a new assessment run and returns its unique ID
	BeginRun(startTime time.Time, respondent schema.Respondent, configParams map[string]any) (int64, error)

	// RecordControlScores stores the per-control scores of a run
	RecordControlScores(runID int64, scores []schema.ControlScore, scoredAt time.Time) error

	// RecordDomainScores stores the per-domain scores of a run
	RecordDomainScores(runID int64, scores []schema.DomainScore, scoredAt time.Time) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, assessment schema.Assessment) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded run
	GetAllRuns() ([]schema.AssessmentRunRecord, error)

	// GetAllControlScores retrieves every recorded control score
	GetAllControlScores() ([]schema.ControlScoreRecord, error)

	// GetAllDomainScores retrieves every recorded domain score
	GetAllDomainScores() ([]schema.DomainScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}

// Renderer turns an assessment into its deliverable documents.
type Renderer interface {
	Render(ctx context.Context, assessment schema.Assessment, respondent schema.Respondent) (schema.ReportPayload, error)
}

// Deliverer hands a rendered report to a recipient.
type Deliverer interface {
	Deliver(ctx context.Context, payload schema.ReportPayload, recipient schema.Respondent) (schema.DeliveryAck, error)
}

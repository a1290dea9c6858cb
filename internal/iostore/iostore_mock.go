package iostore

import (
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, respondent schema.Respondent, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, respondent, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// RecordControlScores implements the HistoryStore interface.
func (m *MockHistoryStore) RecordControlScores(runID int64, scores []schema.ControlScore, scoredAt time.Time) error {
	args := m.Called(runID, scores, scoredAt)
	return args.Error(0)
}

// RecordDomainScores implements the HistoryStore interface.
func (m *MockHistoryStore) RecordDomainScores(runID int64, scores []schema.DomainScore, scoredAt time.Time) error {
	args := m.Called(runID, scores, scoredAt)
	return args.Error(0)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, assessment schema.Assessment) error {
	args := m.Called(runID, endTime, assessment)
	return args.Error(0)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.AssessmentRunRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.AssessmentRunRecord), args.Error(1)
}

// GetAllControlScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllControlScores() ([]schema.ControlScoreRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.ControlScoreRecord), args.Error(1)
}

// GetAllDomainScores implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllDomainScores() ([]schema.DomainScoreRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.DomainScoreRecord), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

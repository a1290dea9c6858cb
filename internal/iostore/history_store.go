package iostore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore opens the history database for the backend and migrates it to the latest schema.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}
	if err := migrateUp(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// placeholders returns n bind parameters in the backend's dialect, starting at 1.
func (hs *HistoryStoreImpl) placeholders(n int) string {
	params := make([]string, n)
	for i := range params {
		if hs.backend == schema.PostgreSQLBackend {
			params[i] = fmt.Sprintf("$%d", i+1)
		} else {
			params[i] = "?"
		}
	}
	return strings.Join(params, ", ")
}

// BeginRun creates a new assessment run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, respondent schema.Respondent, configParams map[string]any) (int64, error) {
	if hs.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)
	columns := "start_time, company, respondent_role, config_params"
	args := []any{formatTime(startTime, hs.backend), respondent.Company, respondent.Role, string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING run_id`, quotedTableName, columns, hs.placeholders(len(args)))
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quotedTableName, columns, hs.placeholders(len(args)))
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert assessment run: %w", err)
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert assessment run: %w", err)
	}
	return runID, nil
}

// RecordControlScores stores the per-control scores of a run in one transaction.
func (hs *HistoryStoreImpl) RecordControlScores(runID int64, scores []schema.ControlScore, scoredAt time.Time) error {
	if hs.disabled() || len(scores) == 0 {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (run_id, domain_name, control_name, score, answer_count, scored_at) VALUES (%s)`,
		quoteTableName(controlScoresTable, hs.backend), hs.placeholders(6))

	return hs.insertBatch(query, len(scores), func(i int) []any {
		cs := scores[i]
		return []any{runID, string(cs.Domain), cs.Control, cs.Score, len(cs.Answers), formatTime(scoredAt, hs.backend)}
	})
}

// RecordDomainScores stores the per-domain scores of a run in one transaction.
func (hs *HistoryStoreImpl) RecordDomainScores(runID int64, scores []schema.DomainScore, scoredAt time.Time) error {
	if hs.disabled() || len(scores) == 0 {
		return nil
	}
	query := fmt.Sprintf(`INSERT INTO %s (run_id, domain_name, score, status, controls_count, scored_at) VALUES (%s)`,
		quoteTableName(domainScoresTable, hs.backend), hs.placeholders(6))

	return hs.insertBatch(query, len(scores), func(i int) []any {
		ds := scores[i]
		return []any{runID, string(ds.Domain), ds.Score, string(ds.Status), ds.ControlsCount, formatTime(scoredAt, hs.backend)}
	})
}

func (hs *HistoryStoreImpl) insertBatch(query string, n int, row func(int) []any) error {
	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range n {
		if _, err := stmt.Exec(row(i)...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert scores: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scores: %w", err)
	}
	return nil
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, assessment schema.Assessment) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	// First, get the start_time to calculate duration
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, hs.placeholders(1))
	startTime, err := hs.scanTime(hs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	switch hs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, overall_score = $3, overall_status = $4, total_controls = $5 WHERE run_id = $6`, quotedTableName)
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, overall_score = ?, overall_status = ?, total_controls = ? WHERE run_id = ?`, quotedTableName)
	}

	_, err = hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs,
		assessment.OverallScore, string(assessment.OverallStatus), assessment.TotalControls, runID)
	if err != nil {
		return fmt.Errorf("failed to update assessment run: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedRuns)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time, overall_score, overall_status FROM %s ORDER BY run_id DESC LIMIT 1", quotedRuns)
		var (
			startRaw      any
			overallScore  sql.NullFloat64
			overallStatus sql.NullString
		)
		if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &startRaw, &overallScore, &overallStatus); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		lastRunTime, err := parseTime(startRaw)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = lastRunTime
		status.LastOverall = overallScore.Float64
		status.LastOverallText = schema.ReadinessLabel(overallStatus.String)

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quotedRuns)
		oldest, err := hs.scanTime(hs.db.QueryRow(oldestRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest

		controlsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_controls), 0) FROM %s", quotedRuns)
		if err := hs.db.QueryRow(controlsQuery).Scan(&status.TotalControls); err != nil {
			return status, fmt.Errorf("failed to get total controls: %w", err)
		}
	}

	for _, table := range historyTables {
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		var count int64
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all assessment runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.AssessmentRunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, company, respondent_role,
    overall_score, overall_status, total_controls, config_params FROM %s ORDER BY run_id`, quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AssessmentRunRecord
	for rows.Next() {
		var (
			record           schema.AssessmentRunRecord
			startRaw, endRaw any
		)
		if err := rows.Scan(&record.RunID, &startRaw, &endRaw, &record.RunDurationMs, &record.Company, &record.RespondentRole,
			&record.OverallScore, &record.OverallStatus, &record.TotalControls, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan assessment run: %w", err)
		}
		if record.StartTime, err = parseTime(startRaw); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if endRaw != nil {
			endTime, err := parseTime(endRaw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment runs: %w", err)
	}
	return results, nil
}

// GetAllControlScores retrieves all control scores from the store.
func (hs *HistoryStoreImpl) GetAllControlScores() ([]schema.ControlScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, domain_name, control_name, score, answer_count, scored_at
    FROM %s ORDER BY run_id, domain_name, control_name`, quoteTableName(controlScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query control scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ControlScoreRecord
	for rows.Next() {
		var (
			record   schema.ControlScoreRecord
			scoredAt any
		)
		if err := rows.Scan(&record.RunID, &record.Domain, &record.Control, &record.Score, &record.AnswerCount, &scoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan control score: %w", err)
		}
		if record.ScoredAt, err = parseTime(scoredAt); err != nil {
			return nil, fmt.Errorf("failed to parse scored_at: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating control scores: %w", err)
	}
	return results, nil
}

// GetAllDomainScores retrieves all domain scores from the store.
func (hs *HistoryStoreImpl) GetAllDomainScores() ([]schema.DomainScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, domain_name, score, status, controls_count, scored_at
    FROM %s ORDER BY run_id, domain_name`, quoteTableName(domainScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query domain scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DomainScoreRecord
	for rows.Next() {
		var (
			record   schema.DomainScoreRecord
			scoredAt any
		)
		if err := rows.Scan(&record.RunID, &record.Domain, &record.Score, &record.Status, &record.ControlsCount, &scoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan domain score: %w", err)
		}
		if record.ScoredAt, err = parseTime(scoredAt); err != nil {
			return nil, fmt.Errorf("failed to parse scored_at: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating domain scores: %w", err)
	}
	return results, nil
}

func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	var raw any
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return parseTime(raw)
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseTime reads a time column: SQLite stores RFC3339 text, the other
// backends return native datetimes.
func parseTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return time.Parse(time.RFC3339Nano, v)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", raw)
	}
}

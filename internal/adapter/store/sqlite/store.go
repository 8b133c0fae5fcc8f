// Package sqlite persists per-call analytics records. The task layer writes
// one row per model call; the stats command reads the aggregates back.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mwestbrook/genstudio/internal/domain"
)

// Store implements call-record persistence on SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a store at the given path. Use ":memory:" for an
// in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	-- One row per model call (not per attempt).
	CREATE TABLE IF NOT EXISTS calls (
		call_id TEXT PRIMARY KEY,
		task TEXT NOT NULL,
		model TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL CHECK(outcome IN ('success', 'failure')),
		error_type TEXT,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calls_task ON calls(task);
	CREATE INDEX IF NOT EXISTS idx_calls_created_at ON calls(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordCall inserts one call record.
func (s *Store) RecordCall(ctx context.Context, record domain.CallRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calls (call_id, task, model, attempts, elapsed_ms, outcome, error_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Task,
		record.Model,
		record.Attempts,
		record.Elapsed.Milliseconds(),
		record.Outcome,
		record.ErrorType,
		record.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert call record: %w", err)
	}
	return nil
}

// TaskStats returns aggregate statistics grouped by task, ordered by call
// count descending.
func (s *Store) TaskStats(ctx context.Context) ([]domain.TaskStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task,
		       COUNT(*),
		       SUM(CASE WHEN outcome = 'failure' THEN 1 ELSE 0 END),
		       SUM(elapsed_ms)
		FROM calls
		GROUP BY task
		ORDER BY COUNT(*) DESC, task ASC`)
	if err != nil {
		return nil, fmt.Errorf("query task stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.TaskStats
	for rows.Next() {
		var ts domain.TaskStats
		var elapsedMS int64
		if err := rows.Scan(&ts.Task, &ts.Calls, &ts.Failures, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan task stats: %w", err)
		}
		ts.TotalElapsed = time.Duration(elapsedMS) * time.Millisecond
		stats = append(stats, ts)
	}
	return stats, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

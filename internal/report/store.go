// Package report persists the outcome of diagnostic sessions so past
// checks on a host can be reviewed later.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Check is one recorded diagnostic session outcome.
type Check struct {
	ID            int64
	CreatedAt     time.Time
	Problem       string
	Status        string // terminal session status
	Model         string
	ToolCallsUsed int
	Extensions    int
	Analysis      string
}

// Store provides database operations for check history.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the history database at dbPath.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	// WAL mode allows a reader alongside the writer; SQLite still wants
	// a single write connection.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS system_checks (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at      INTEGER NOT NULL,
		problem         TEXT NOT NULL,
		status          TEXT NOT NULL,
		model           TEXT NOT NULL DEFAULT '',
		tool_calls_used INTEGER NOT NULL DEFAULT 0,
		extensions      INTEGER NOT NULL DEFAULT 0,
		analysis        TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_system_checks_created
		ON system_checks(created_at DESC);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// RecordCheck inserts one finished session and returns its row ID.
func (s *Store) RecordCheck(ctx context.Context, c Check) (int64, error) {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO system_checks
			(created_at, problem, status, model, tool_calls_used, extensions, analysis)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Unix(), c.Problem, c.Status, c.Model, c.ToolCallsUsed, c.Extensions, c.Analysis,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record check: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the latest checks, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Check, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, problem, status, model, tool_calls_used, extensions, analysis
		FROM system_checks
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	var checks []Check
	for rows.Next() {
		var c Check
		var createdAt int64
		if err := rows.Scan(&c.ID, &createdAt, &c.Problem, &c.Status, &c.Model,
			&c.ToolCallsUsed, &c.Extensions, &c.Analysis); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		c.CreatedAt = time.Unix(createdAt, 0)
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

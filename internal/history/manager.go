// Package history keeps a local journal of pre-commit runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one journal entry.
type Run struct {
	StartedAt   time.Time     `yaml:"started_at"`
	ProjectRoot string        `yaml:"project_root"`
	Outcome     string        `yaml:"outcome"`
	Formatter   string        `yaml:"formatter"`
	Error       string        `yaml:"error,omitempty"`
	Staged      []string      `yaml:"staged"`
	Duration    time.Duration `yaml:"duration"`
}

// Manager owns the journal database.
type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if needed) the journal at dsn and migrates it.
func NewManager(ctx context.Context, dsn string) (*Manager, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	db.SetMaxOpenConns(1)

	manager := &Manager{db: db}
	if err := manager.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return manager, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	if m.db != nil {
		if err := m.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// Record appends a run to the journal.
func (m *Manager) Record(ctx context.Context, run Run) error {
	staged, err := json.Marshal(run.Staged)
	if err != nil {
		return fmt.Errorf("failed to encode staged paths: %w", err)
	}

	_, err = m.db.ExecContext(ctx, `
		INSERT INTO runs (project_root, started_at, duration_ms, outcome, formatter, error_message, staged)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ProjectRoot,
		run.StartedAt.UTC().UnixMilli(),
		run.Duration.Milliseconds(),
		run.Outcome,
		run.Formatter,
		run.Error,
		staged,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs for projectRoot, newest first.
func (m *Manager) Recent(ctx context.Context, projectRoot string, limit int) ([]Run, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT project_root, started_at, duration_ms, outcome, formatter, error_message, staged
		FROM runs
		WHERE project_root = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?`,
		projectRoot, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []Run{}
	for rows.Next() {
		var (
			run        Run
			startedAt  int64
			durationMS int64
			staged     []byte
		)
		if err := rows.Scan(&run.ProjectRoot, &startedAt, &durationMS, &run.Outcome,
			&run.Formatter, &run.Error, &staged); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedAt).UTC()
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal(staged, &run.Staged); err != nil {
			return nil, fmt.Errorf("failed to decode staged paths: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

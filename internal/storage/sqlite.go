// Package storage provides SQLite-based persistence for the run journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// End reasons recorded for a run.
const (
	EndToppedOut = "topped_out"
	EndQuit      = "quit"
	EndRestart   = "restart"
)

// sqliteTime is the layout SQLite's CURRENT_TIMESTAMP produces.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID        string // UUID, assigned by SaveRun when empty
	GameID    string
	Pieces    int
	Rows      int
	Duration  time.Duration
	EndReason string
	CreatedAt time.Time
}

// RunTotals aggregates every recorded run of a game.
type RunTotals struct {
	GameID     string
	Runs       int
	Pieces     int
	Rows       int
	BestRows   int
	PlayTime   time.Duration
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			pieces INTEGER NOT NULL DEFAULT 0,
			rows_cleared INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(run RunRecord) (string, error) {
	switch run.EndReason {
	case EndToppedOut, EndQuit, EndRestart:
	default:
		return "", fmt.Errorf("storage: invalid end reason %q", run.EndReason)
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return "", fmt.Errorf("storage: invalid run id: %w", err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (id, game_id, pieces, rows_cleared, duration_secs, end_reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.GameID,
		run.Pieces,
		run.Rows,
		int64(run.Duration.Seconds()),
		run.EndReason,
		createdAt.UTC().Format(sqliteTime),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.ID, nil
}

// RecentRuns retrieves the most recent runs of a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, pieces, rows_cleared, duration_secs, end_reason, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var secs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Pieces, &r.Rows, &secs, &r.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(secs) * time.Second
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a single run. It returns nil when no run has that ID.
func (s *Store) RunByID(id string) (*RunRecord, error) {
	var r RunRecord
	var secs int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, pieces, rows_cleared, duration_secs, end_reason, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.GameID, &r.Pieces, &r.Rows, &secs, &r.EndReason, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Duration = time.Duration(secs) * time.Second
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// Totals aggregates all runs of a game. A game with no runs yields
// zero totals, not an error.
func (s *Store) Totals(gameID string) (RunTotals, error) {
	totals := RunTotals{GameID: gameID}
	var secs int64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(pieces), 0), COALESCE(SUM(rows_cleared), 0),
		        COALESCE(MAX(rows_cleared), 0), COALESCE(SUM(duration_secs), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&totals.Runs, &totals.Pieces, &totals.Rows, &totals.BestRows, &secs, &lastPlayed)
	if err != nil {
		return totals, fmt.Errorf("storage: cannot get run totals: %w", err)
	}

	totals.PlayTime = time.Duration(secs) * time.Second
	totals.LastPlayed = parseTime(lastPlayed)
	return totals, nil
}

// ClearRuns deletes all runs for the given game.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values, depending
// on how the driver decoded the column.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

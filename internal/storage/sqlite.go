// Package storage provides SQLite-based persistence for solver results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Solve outcomes stored in the solve log.
const (
	OutcomeSolved     = "solved"
	OutcomeUnsolvable = "unsolvable"
	OutcomeTimeout    = "timeout"
	OutcomeFailed     = "failed"
)

// Store manages the SQLite database connection for the solution cache
// and the solve log.
type Store struct {
	db *sql.DB
}

// SolveRecord is one entry of the solve log.
type SolveRecord struct {
	ID        int64
	Grid      []byte
	Width     int
	Moves     int
	Duration  time.Duration
	Cached    bool
	Outcome   string
	CreatedAt time.Time
}

// SolveStats summarizes the solve log.
type SolveStats struct {
	Total      int
	Solved     int
	CacheHits  int
	Solutions  int
	LongestRun int
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
		CREATE TABLE IF NOT EXISTS solutions (
			width INTEGER NOT NULL,
			grid BLOB NOT NULL,
			moves BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (width, grid)
		);

		CREATE TABLE IF NOT EXISTS solve_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			width INTEGER NOT NULL,
			grid BLOB NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			cached INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solve_log_outcome ON solve_log(outcome);
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

// SaveSolution stores moves as the answer for grid, replacing any
// earlier answer.
func (s *Store) SaveSolution(grid []byte, width int, moves []byte) error {
	if moves == nil {
		moves = []byte{}
	}
	_, err := s.db.Exec(
		`INSERT INTO solutions (width, grid, moves) VALUES (?, ?, ?)
		 ON CONFLICT (width, grid) DO UPDATE SET moves = excluded.moves`,
		width, grid, moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save solution: %w", err)
	}
	return nil
}

// LookupSolution returns the stored answer for grid, if any.
func (s *Store) LookupSolution(grid []byte, width int) ([]byte, bool, error) {
	var moves []byte
	err := s.db.QueryRow(
		"SELECT moves FROM solutions WHERE width = ? AND grid = ?",
		width, grid,
	).Scan(&moves)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: cannot query solution: %w", err)
	}
	if moves == nil {
		moves = []byte{}
	}
	return moves, true, nil
}

// ClearSolutions deletes every cached solution.
func (s *Store) ClearSolutions() error {
	_, err := s.db.Exec("DELETE FROM solutions")
	if err != nil {
		return fmt.Errorf("storage: cannot clear solutions: %w", err)
	}
	return nil
}

// RecordSolve appends an entry to the solve log.
// Returns the ID of the inserted record.
func (s *Store) RecordSolve(rec SolveRecord) (int64, error) {
	outcome := rec.Outcome
	if outcome == "" {
		outcome = OutcomeSolved
	}
	result, err := s.db.Exec(
		`INSERT INTO solve_log (width, grid, moves, duration_ms, cached, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Width,
		rec.Grid,
		rec.Moves,
		rec.Duration.Milliseconds(),
		rec.Cached,
		outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSolves retrieves the most recent solve log entries, newest first.
func (s *Store) RecentSolves(limit int) ([]SolveRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, width, grid, moves, duration_ms, cached, outcome, created_at
		 FROM solve_log
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solve log: %w", err)
	}
	defer rows.Close()

	var records []SolveRecord
	for rows.Next() {
		var rec SolveRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&rec.ID,
			&rec.Width,
			&rec.Grid,
			&rec.Moves,
			&durationMS,
			&rec.Cached,
			&rec.Outcome,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = parseTimestamp(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats summarizes the solve log and the solution cache.
func (s *Store) Stats() (SolveStats, error) {
	var st SolveStats
	var longest sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(cached), 0),
		        MAX(CASE WHEN outcome = ? THEN moves END)
		 FROM solve_log`,
		OutcomeSolved, OutcomeSolved,
	).Scan(&st.Total, &st.Solved, &st.CacheHits, &longest)
	if err != nil {
		return st, fmt.Errorf("storage: cannot query solve stats: %w", err)
	}
	if longest.Valid {
		st.LongestRun = int(longest.Int64)
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM solutions").Scan(&st.Solutions); err != nil {
		return st, fmt.Errorf("storage: cannot count solutions: %w", err)
	}
	return st, nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

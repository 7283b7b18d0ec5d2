// Package telemetry persists per-day decision counters in SQLite. Counters
// feed the report command only; recording is best-effort and a failed write
// never affects a verdict.
package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	day   TEXT NOT NULL,
	gate  TEXT NOT NULL,
	kind  TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (day, gate, kind)
);
`

// Store manages the decision counters in SQLite.
type Store struct {
	db *sql.DB
}

// DefaultPath is the canonical telemetry database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "hookgate", "telemetry.db")
}

// Open opens (or creates) the telemetry database and runs migrations.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("telemetry: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record increments the counter for one (day, gate, kind) cell.
func (s *Store) Record(day, gate, kind string) error {
	if gate == "" {
		gate = "-"
	}
	_, err := s.db.Exec(
		`INSERT INTO decisions (day, gate, kind, count) VALUES (?, ?, ?, 1)
		 ON CONFLICT (day, gate, kind) DO UPDATE SET count = count + 1`,
		day, gate, kind,
	)
	if err != nil {
		return fmt.Errorf("telemetry: record: %w", err)
	}
	return nil
}

// Row is one aggregated counter cell.
type Row struct {
	Day   string `json:"day"`
	Gate  string `json:"gate"`
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Report returns the counters for one day, every day when day is empty,
// ordered for stable output.
func (s *Store) Report(day string) ([]Row, error) {
	query := `SELECT day, gate, kind, count FROM decisions`
	var args []any
	if day != "" {
		query += ` WHERE day = ?`
		args = append(args, day)
	}
	query += ` ORDER BY day, gate, kind`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: report: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Day, &r.Gate, &r.Kind, &r.Count); err != nil {
			return nil, fmt.Errorf("telemetry: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

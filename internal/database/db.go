package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with additional methods
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// A single writer; WAL keeps readers of the file unblocked.
	db.SetMaxOpenConns(1)
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{db}, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        started_at DATETIME NOT NULL,
        targets TEXT NOT NULL,
        duration_seconds INTEGER,
        save_interval_seconds INTEGER,
        timeout_ms INTEGER,
        high_ping_threshold_ms INTEGER
    );

    CREATE TABLE IF NOT EXISTS snapshots (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL REFERENCES runs(id),
        timestamp DATETIME NOT NULL,
        target TEXT NOT NULL,
        total_requests INTEGER NOT NULL,
        successful INTEGER NOT NULL,
        timed_out INTEGER NOT NULL,
        timeout_percentage REAL NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, timestamp);
    CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp);

    CREATE TABLE IF NOT EXISTS irregularities (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL REFERENCES runs(id),
        logged_at DATETIME NOT NULL,
        target TEXT NOT NULL,
        start_time DATETIME NOT NULL,
        end_time DATETIME NOT NULL,
        duration_seconds INTEGER
    );

    CREATE INDEX IF NOT EXISTS idx_irregularities_run ON irregularities(run_id, start_time);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}

package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ping-monitor/internal/config"
	"ping-monitor/internal/models"
)

// Sink persists one run's snapshots and irregularities, tagged with a run id
// so several runs can share a database file.
type Sink struct {
	db    *DB
	runID string
}

// StartRun registers a run and returns a sink bound to it
func (db *DB) StartRun(cfg config.Config, startedAt time.Time) (*Sink, error) {
	runID := uuid.NewString()
	query := `
        INSERT INTO runs (id, started_at, targets, duration_seconds, save_interval_seconds, timeout_ms, high_ping_threshold_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := db.Exec(query,
		runID,
		startedAt.UTC(),
		strings.Join(cfg.Targets, ","),
		int64(cfg.Duration/time.Second),
		int64(cfg.SaveInterval/time.Second),
		cfg.Timeout.Milliseconds(),
		cfg.HighPingThreshold.Milliseconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("register run: %w", err)
	}
	return &Sink{db: db, runID: runID}, nil
}

// RunID returns the id rows of this run are stored under
func (s *Sink) RunID() string {
	return s.runID
}

// WriteSnapshot saves one row per target in a single transaction
func (s *Sink) WriteSnapshot(snap models.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO snapshots (run_id, timestamp, target, total_requests, successful, timed_out, timeout_percentage)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	for _, t := range snap.Targets {
		_, err := tx.Exec(query,
			s.runID,
			snap.Timestamp.UTC(),
			t.Target,
			int64(t.Total()),
			int64(t.Successful),
			int64(t.TimedOut),
			t.TimeoutPercentage(),
		)
		if err != nil {
			return fmt.Errorf("insert snapshot for %s: %w", t.Target, err)
		}
	}
	return tx.Commit()
}

// WriteIrregularity saves a closed irregularity period
func (s *Sink) WriteIrregularity(at time.Time, period models.Irregularity) error {
	query := `
        INSERT INTO irregularities (run_id, logged_at, target, start_time, end_time, duration_seconds)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := s.db.Exec(query,
		s.runID,
		at.UTC(),
		period.Target,
		period.Start.UTC(),
		period.End.UTC(),
		int64(period.Duration()/time.Second),
	)
	if err != nil {
		return fmt.Errorf("insert irregularity for %s: %w", period.Target, err)
	}
	return nil
}

// Close closes the underlying database
func (s *Sink) Close() error {
	return s.db.Close()
}

// SnapshotRow is one persisted counters row
type SnapshotRow struct {
	Timestamp         time.Time
	Target            string
	Total             int64
	Successful        int64
	TimedOut          int64
	TimeoutPercentage float64
}

// Snapshots returns the counters rows of a run in insertion order
func (db *DB) Snapshots(runID string) ([]SnapshotRow, error) {
	query := `
        SELECT timestamp, target, total_requests, successful, timed_out, timeout_percentage
        FROM snapshots
        WHERE run_id = ?
        ORDER BY id
    `

	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRow
	for rows.Next() {
		var r SnapshotRow
		if err := rows.Scan(&r.Timestamp, &r.Target, &r.Total, &r.Successful, &r.TimedOut, &r.TimeoutPercentage); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Irregularities returns the closed periods of a run ordered by start time
func (db *DB) Irregularities(runID string) ([]models.Irregularity, error) {
	query := `
        SELECT target, start_time, end_time
        FROM irregularities
        WHERE run_id = ?
        ORDER BY start_time, id
    `

	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Irregularity
	for rows.Next() {
		var p models.Irregularity
		if err := rows.Scan(&p.Target, &p.Start, &p.End); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

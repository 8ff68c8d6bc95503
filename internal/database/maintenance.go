package database

import (
	"fmt"
	"time"
)

// PruneBefore deletes runs started before cutoff together with their rows
func (db *DB) PruneBefore(cutoff time.Time) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	old := `SELECT id FROM runs WHERE started_at < ?`
	if _, err := tx.Exec(`DELETE FROM snapshots WHERE run_id IN (`+old+`)`, cutoff.UTC()); err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM irregularities WHERE run_id IN (`+old+`)`, cutoff.UTC()); err != nil {
		return 0, fmt.Errorf("prune irregularities: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	// Vacuum to reclaim space (only when something was removed)
	if n > 0 {
		if _, err := db.Exec("VACUUM"); err != nil {
			return n, fmt.Errorf("vacuum: %w", err)
		}
	}
	return n, nil
}

// Package csvlog appends counter snapshots and closed irregularity periods to
// CSV log files.
package csvlog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"ping-monitor/internal/models"
)

var (
	pingHeader         = []string{"timestamp", "ip", "total_requests", "successful", "timed_out", "timeout_percentage"}
	irregularityHeader = []string{"timestamp", "ip", "start", "end"}
)

// TimeFormat is the layout of every timestamp written to the logs.
const TimeFormat = time.RFC3339

// Sink writes the ping and irregularity logs. Each write opens the file in
// append mode and issues a single write, so a failed flush never touches
// rows that are already on disk.
type Sink struct {
	pingPath         string
	irregularityPath string
}

// New prepares both log files, writing the header row to any file that is
// new or empty. Existing rows are kept.
func New(pingPath, irregularityPath string) (*Sink, error) {
	if err := ensureHeader(pingPath, pingHeader); err != nil {
		return nil, err
	}
	if err := ensureHeader(irregularityPath, irregularityHeader); err != nil {
		return nil, err
	}
	return &Sink{pingPath: pingPath, irregularityPath: irregularityPath}, nil
}

// WriteSnapshot appends one counters row per target.
func (s *Sink) WriteSnapshot(snap models.Snapshot) error {
	ts := snap.Timestamp.Format(TimeFormat)
	rows := make([][]string, 0, len(snap.Targets))
	for _, t := range snap.Targets {
		rows = append(rows, []string{
			ts,
			t.Target,
			strconv.FormatUint(t.Total(), 10),
			strconv.FormatUint(t.Successful, 10),
			strconv.FormatUint(t.TimedOut, 10),
			strconv.FormatFloat(t.TimeoutPercentage(), 'f', 2, 64),
		})
	}
	if err := appendRows(s.pingPath, rows); err != nil {
		return fmt.Errorf("append ping log: %w", err)
	}
	return nil
}

// WriteIrregularity appends the closed period followed by a blank separator row.
func (s *Sink) WriteIrregularity(at time.Time, period models.Irregularity) error {
	rows := [][]string{
		{
			at.Format(TimeFormat),
			period.Target,
			period.Start.Format(TimeFormat),
			period.End.Format(TimeFormat),
		},
		{},
	}
	if err := appendRows(s.irregularityPath, rows); err != nil {
		return fmt.Errorf("append irregularities log: %w", err)
	}
	return nil
}

// Close implements models.Sink. Files are not held open between writes.
func (s *Sink) Close() error {
	return nil
}

func ensureHeader(path string, header []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > 0 {
		return nil
	}

	data, err := encode([][]string{header})
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	return nil
}

func appendRows(path string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	data, err := encode(rows)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

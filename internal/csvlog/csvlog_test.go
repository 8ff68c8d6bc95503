package csvlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ping-monitor/internal/models"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newSink(t *testing.T) (*Sink, string, string) {
	t.Helper()
	dir := t.TempDir()
	pingPath := filepath.Join(dir, "ping_log.csv")
	irrPath := filepath.Join(dir, "irregularities_log.csv")
	s, err := New(pingPath, irrPath)
	require.NoError(t, err)
	return s, pingPath, irrPath
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func snapshot() models.Snapshot {
	return models.Snapshot{
		Timestamp: epoch,
		Targets: []models.TargetSnapshot{
			{Target: "10.0.0.1", Successful: 2, TimedOut: 1},
			{Target: "10.0.0.2"},
		},
	}
}

func TestNewWritesHeaders(t *testing.T) {
	_, pingPath, irrPath := newSink(t)

	assert.Equal(t, []string{"timestamp,ip,total_requests,successful,timed_out,timeout_percentage"}, readLines(t, pingPath))
	assert.Equal(t, []string{"timestamp,ip,start,end"}, readLines(t, irrPath))
}

func TestWriteSnapshotAppends(t *testing.T) {
	s, pingPath, _ := newSink(t)

	require.NoError(t, s.WriteSnapshot(snapshot()))
	require.NoError(t, s.WriteSnapshot(snapshot()))

	lines := readLines(t, pingPath)
	require.Len(t, lines, 5)
	assert.Equal(t, "timestamp,ip,total_requests,successful,timed_out,timeout_percentage", lines[0])
	assert.Equal(t, "2024-05-01T12:00:00Z,10.0.0.1,3,2,1,33.33", lines[1])
	assert.Equal(t, "2024-05-01T12:00:00Z,10.0.0.2,0,0,0,0.00", lines[2])
	assert.Equal(t, lines[1:3], lines[3:5], "a second flush adds a second row set")
}

func TestReopenKeepsRowsAndSingleHeader(t *testing.T) {
	s, pingPath, irrPath := newSink(t)
	require.NoError(t, s.WriteSnapshot(snapshot()))

	again, err := New(pingPath, irrPath)
	require.NoError(t, err)
	require.NoError(t, again.WriteSnapshot(snapshot()))

	lines := readLines(t, pingPath)
	require.Len(t, lines, 5)
	headers := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "timestamp,") {
			headers++
		}
	}
	assert.Equal(t, 1, headers)
}

func TestWriteIrregularity(t *testing.T) {
	s, _, irrPath := newSink(t)
	period := models.Irregularity{
		Target: "10.0.0.1",
		Start:  epoch,
		End:    epoch.Add(5 * time.Minute),
	}

	require.NoError(t, s.WriteIrregularity(epoch.Add(6*time.Minute), period))

	assert.Equal(t, []string{
		"timestamp,ip,start,end",
		"2024-05-01T12:06:00Z,10.0.0.1,2024-05-01T12:00:00Z,2024-05-01T12:05:00Z",
		"",
	}, readLines(t, irrPath))
}

func TestWriteFailureLeavesPriorRows(t *testing.T) {
	s, pingPath, _ := newSink(t)
	require.NoError(t, s.WriteSnapshot(snapshot()))
	before, err := os.ReadFile(pingPath)
	require.NoError(t, err)

	broken := &Sink{pingPath: filepath.Join(t.TempDir(), "missing", "ping_log.csv")}
	assert.Error(t, broken.WriteSnapshot(snapshot()))

	after, err := os.ReadFile(pingPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NoError(t, s.Close())
}

func TestNewFailsForUnwritablePath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), filepath.Join(t.TempDir(), "irr.csv"))
	assert.Error(t, err)
}

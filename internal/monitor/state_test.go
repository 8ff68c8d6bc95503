package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ping-monitor/internal/models"
)

func TestStoreRecord(t *testing.T) {
	s := NewStore([]string{"10.0.0.1", "10.0.0.2"})
	timeout := 800 * time.Millisecond

	require.NoError(t, s.Record(models.Reached("10.0.0.1", epoch, 20*time.Millisecond), timeout))
	require.NoError(t, s.Record(models.Unreachable("10.0.0.1", epoch), timeout))
	require.NoError(t, s.Record(models.Reached("10.0.0.2", epoch, 5*time.Millisecond), timeout))

	assert.Equal(t, []float64{20, 800}, s.Window("10.0.0.1").Values())
	assert.Equal(t, []float64{5}, s.Window("10.0.0.2").Values())

	snap := s.Snapshot(epoch)
	require.Len(t, snap.Targets, 2)
	assert.Equal(t, epoch, snap.Timestamp)

	first := snap.Targets[0]
	assert.Equal(t, "10.0.0.1", first.Target)
	assert.Equal(t, uint64(1), first.Successful)
	assert.Equal(t, uint64(1), first.TimedOut)
	assert.InDelta(t, 50, first.TimeoutPercentage(), 1e-9)
	assert.InDelta(t, 410, first.RollingAvgMs, 1e-9)
	assert.False(t, first.LastReachable)
	assert.Equal(t, 2, first.WindowFill)

	assert.Equal(t, "10.0.0.2", snap.Targets[1].Target)
	assert.True(t, snap.Targets[1].LastReachable)
}

func TestStoreRecordUnknownTarget(t *testing.T) {
	s := NewStore([]string{"10.0.0.1"})
	assert.Error(t, s.Record(models.Unreachable("192.0.2.1", epoch), time.Second))
	assert.Nil(t, s.Window("192.0.2.1"))
}

func TestStoreCountersSumToCycles(t *testing.T) {
	targets := []string{"a", "b", "c"}
	s := NewStore(targets)
	const cycles = 57
	for i := 0; i < cycles; i++ {
		for j, target := range targets {
			result := models.Unreachable(target, epoch)
			if (i+j)%3 != 0 {
				result = models.Reached(target, epoch, time.Duration(i)*time.Millisecond)
			}
			require.NoError(t, s.Record(result, time.Second))
		}
	}
	for _, ts := range s.Snapshot(epoch).Targets {
		assert.Equal(t, uint64(cycles), ts.Successful+ts.TimedOut, ts.Target)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewStore([]string{"a"})
	before := s.Snapshot(epoch)
	require.NoError(t, s.Record(models.Unreachable("a", epoch), time.Second))
	after := s.Snapshot(epoch)

	assert.Equal(t, uint64(0), before.Targets[0].TimedOut)
	assert.Equal(t, uint64(1), after.Targets[0].TimedOut)
	assert.Equal(t, s.Snapshot(epoch), after)
}

func TestStoreEmptySnapshot(t *testing.T) {
	s := NewStore([]string{"a", "b"})
	snap := s.Snapshot(epoch)
	assert.Equal(t, []string{"a", "b"}, s.Targets())
	for _, ts := range snap.Targets {
		assert.Equal(t, uint64(0), ts.Total())
		assert.Equal(t, 0.0, ts.TimeoutPercentage())
	}
}

package monitor

import (
	"fmt"
	"time"

	"ping-monitor/internal/models"
)

// targetState holds everything tracked for one target during a run.
type targetState struct {
	target     string
	successful uint64
	timedOut   uint64
	window     LatencyWindow
	lastMs     float64
	lastOK     bool
}

// Store is the per-target counter and latency window store. It is owned by a
// single Monitor and is not safe for concurrent use.
type Store struct {
	order []*targetState
	index map[string]*targetState
}

// NewStore registers targets in the given order.
func NewStore(targets []string) *Store {
	s := &Store{
		order: make([]*targetState, 0, len(targets)),
		index: make(map[string]*targetState, len(targets)),
	}
	for _, t := range targets {
		if _, exists := s.index[t]; exists {
			continue
		}
		st := &targetState{target: t}
		s.order = append(s.order, st)
		s.index[t] = st
	}
	return s
}

// Record applies one probe outcome. Failed probes push the timeout as the
// latency sample so they weigh on the rolling average.
func (s *Store) Record(result models.ProbeResult, timeout time.Duration) error {
	st, ok := s.index[result.Target]
	if !ok {
		return fmt.Errorf("unknown target %q", result.Target)
	}

	sample := models.Milliseconds(timeout)
	if result.Reachable && result.HasLatency {
		st.successful++
		sample = result.LatencyMs()
	} else {
		st.timedOut++
	}
	st.window.Push(sample)
	st.lastMs = sample
	st.lastOK = result.Reachable
	return nil
}

// Window returns the latency window of target, or nil for unknown targets.
func (s *Store) Window(target string) *LatencyWindow {
	st, ok := s.index[target]
	if !ok {
		return nil
	}
	return &st.window
}

// Targets returns the registered targets in registration order.
func (s *Store) Targets() []string {
	out := make([]string, len(s.order))
	for i, st := range s.order {
		out[i] = st.target
	}
	return out
}

// Snapshot copies the current counters. It has no side effects.
func (s *Store) Snapshot(now time.Time) models.Snapshot {
	snap := models.Snapshot{
		Timestamp: now,
		Targets:   make([]models.TargetSnapshot, len(s.order)),
	}
	for i, st := range s.order {
		snap.Targets[i] = models.TargetSnapshot{
			Target:        st.target,
			Successful:    st.successful,
			TimedOut:      st.timedOut,
			LastLatencyMs: st.lastMs,
			LastReachable: st.lastOK,
			RollingAvgMs:  st.window.Average(),
			WindowFill:    st.window.Len(),
		}
	}
	return snap
}

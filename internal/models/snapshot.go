package models

import "time"

// TargetSnapshot is a read-only copy of one target's counters.
type TargetSnapshot struct {
	Target     string `json:"target"`
	Successful uint64 `json:"successful"`
	TimedOut   uint64 `json:"timed_out"`

	// Presentation-only fields, never persisted.
	LastLatencyMs float64       `json:"last_latency_ms"`
	LastReachable bool          `json:"last_reachable"`
	RollingAvgMs  float64       `json:"rolling_avg_ms"`
	WindowFill    int           `json:"window_fill"`
	OpenIrregular *Irregularity `json:"open_irregularity,omitempty"`
}

// Total returns the number of probes issued against the target.
func (t TargetSnapshot) Total() uint64 {
	return t.Successful + t.TimedOut
}

// TimeoutPercentage returns the share of timed out probes, 0 when nothing was sent.
func (t TargetSnapshot) TimeoutPercentage() float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t.TimedOut) / float64(total) * 100
}

// Degraded reports whether the target currently has an open irregularity.
func (t TargetSnapshot) Degraded() bool {
	return t.OpenIrregular != nil
}

// Snapshot is a timestamped copy of every target's counters, in registration order.
type Snapshot struct {
	Timestamp time.Time        `json:"timestamp"`
	Targets   []TargetSnapshot `json:"targets"`
}

// Irregularity is a period of sustained high rolling latency for one target.
type Irregularity struct {
	Target string    `json:"target"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Duration returns the length of the period including the grace window.
func (i Irregularity) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

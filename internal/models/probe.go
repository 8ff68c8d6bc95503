package models

import "time"

// ProbeResult is the outcome of a single echo against one target.
// Latency is only meaningful when HasLatency is set.
type ProbeResult struct {
	Target     string
	Timestamp  time.Time
	Reachable  bool
	Latency    time.Duration
	HasLatency bool
}

// Unreachable builds a failed result for target.
func Unreachable(target string, at time.Time) ProbeResult {
	return ProbeResult{Target: target, Timestamp: at}
}

// Reached builds a successful result carrying the round-trip time.
func Reached(target string, at time.Time, rtt time.Duration) ProbeResult {
	if rtt < 0 {
		rtt = 0
	}
	return ProbeResult{
		Target:     target,
		Timestamp:  at,
		Reachable:  true,
		Latency:    rtt,
		HasLatency: true,
	}
}

// LatencyMs returns the round-trip time in milliseconds.
func (r ProbeResult) LatencyMs() float64 {
	return Milliseconds(r.Latency)
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

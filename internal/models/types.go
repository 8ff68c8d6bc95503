package models

import (
	"context"
	"time"
)

// Prober issues one reachability probe against one target. Implementations
// never return an error: any failure is reported as an unreachable result.
type Prober interface {
	Probe(ctx context.Context, target string, timeout time.Duration) ProbeResult
}

// Sink defines append-only persistence of snapshots and closed irregularities
type Sink interface {
	WriteSnapshot(snap Snapshot) error
	WriteIrregularity(at time.Time, period Irregularity) error
	Close() error
}

// Presenter renders the current snapshot to some output surface
type Presenter interface {
	Render(snap Snapshot) error
}

// Monitor interface defines the monitoring lifecycle
type Monitor interface {
	Run(ctx context.Context) ([]TargetSnapshot, error)
}

package monitor

import (
	"context"
	"log"
	"time"

	"ping-monitor/internal/config"
	"ping-monitor/internal/models"
)

// Deps are the collaborators a Monitor drives.
type Deps struct {
	Prober     models.Prober
	Sink       models.Sink
	Presenters []models.Presenter
	Clock      Clock
	Logger     *log.Logger
}

// Monitor runs the probe loop: it owns all per-target state for one run.
type Monitor struct {
	config     config.Config
	prober     models.Prober
	sink       models.Sink
	presenters []models.Presenter
	clock      Clock
	logger     *log.Logger

	store   *Store
	tracker *Tracker
	pacer   *pacer

	closed    []models.Irregularity
	lastFlush time.Time
	dirty     bool
}

// New creates a Monitor for cfg. Missing clock and logger fall back to wall
// time and the standard logger.
func New(cfg config.Config, deps Deps) *Monitor {
	if deps.Clock == nil {
		deps.Clock = realClock{}
	}
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Monitor{
		config:     cfg,
		prober:     deps.Prober,
		sink:       deps.Sink,
		presenters: deps.Presenters,
		clock:      deps.Clock,
		logger:     deps.Logger,
		store:      NewStore(cfg.Targets),
		tracker:    NewTracker(cfg.Targets, cfg.HighPingThreshold),
		pacer:      newPacer(PacingInterval, deps.Clock),
	}
}

// Run probes every target once per pass until the configured duration has
// elapsed or ctx is cancelled, and returns the final per-target counters.
// Sink and presenter failures are logged and never end the run.
func (m *Monitor) Run(ctx context.Context) ([]models.TargetSnapshot, error) {
	start := m.clock.Now()
	m.lastFlush = start
	m.pacer.start()

	m.logger.Printf("Starting monitor with %d targets for %v", len(m.config.Targets), m.config.Duration)

loop:
	for m.clock.Now().Sub(start) < m.config.Duration {
		for _, target := range m.store.Targets() {
			if ctx.Err() != nil {
				break loop
			}
			m.performProbe(ctx, target)
			if err := m.pacer.wait(ctx); err != nil {
				break loop
			}
		}
		m.maybeFlush()
	}

	if ctx.Err() != nil {
		m.logger.Printf("Monitor stopped early: %v", ctx.Err())
	}
	if m.dirty {
		m.flush(m.clock.Now())
	}

	final := m.snapshot(m.clock.Now())
	m.logger.Printf("Monitor finished after %v", m.clock.Now().Sub(start).Round(time.Second))
	return final.Targets, nil
}

// Snapshot returns the current state of every target.
func (m *Monitor) Snapshot() models.Snapshot {
	return m.snapshot(m.clock.Now())
}

// Closed returns the irregularity periods closed so far.
func (m *Monitor) Closed() []models.Irregularity {
	return append([]models.Irregularity(nil), m.closed...)
}

// OpenPeriods returns the irregularity periods still open.
func (m *Monitor) OpenPeriods() []models.Irregularity {
	return m.tracker.OpenPeriods()
}

func (m *Monitor) snapshot(now time.Time) models.Snapshot {
	snap := m.store.Snapshot(now)
	for i := range snap.Targets {
		snap.Targets[i].OpenIrregular = m.tracker.Open(snap.Targets[i].Target)
	}
	return snap
}

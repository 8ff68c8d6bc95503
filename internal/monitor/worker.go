package monitor

import (
	"context"

	"ping-monitor/internal/models"
)

// performProbe runs one probe cycle for target: probe, record, classify, render.
func (m *Monitor) performProbe(ctx context.Context, target string) {
	// The probe is bounded by its own timeout and is never abandoned midway.
	result := m.prober.Probe(context.WithoutCancel(ctx), target, m.config.Timeout)
	result.Target = target

	if err := m.store.Record(result, m.config.Timeout); err != nil {
		m.logger.Printf("Failed to record result for %s: %v", target, err)
		return
	}
	m.dirty = true

	now := m.clock.Now()
	if closed := m.tracker.Evaluate(target, m.store.Window(target), now); closed != nil {
		m.recordIrregularity(now, *closed)
	}

	m.render(m.snapshot(now))
}

// render hands snap to every presenter; failures are cosmetic.
func (m *Monitor) render(snap models.Snapshot) {
	for _, p := range m.presenters {
		if err := p.Render(snap); err != nil {
			m.logger.Printf("Failed to render snapshot: %v", err)
		}
	}
}

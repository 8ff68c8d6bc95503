package monitor

import (
	"errors"
	"time"

	"ping-monitor/internal/models"
)

// maybeFlush persists counters once SaveInterval has passed since the last flush.
func (m *Monitor) maybeFlush() {
	now := m.clock.Now()
	if now.Sub(m.lastFlush) >= m.config.SaveInterval {
		m.flush(now)
	}
}

// flush writes the counters snapshot to the sink. Only closed irregularity
// periods are ever persisted and those are written as they close.
func (m *Monitor) flush(now time.Time) {
	m.lastFlush = now
	m.dirty = false
	if m.sink == nil {
		return
	}
	if err := m.sink.WriteSnapshot(m.store.Snapshot(now)); err != nil {
		m.logger.Printf("Failed to write snapshot: %v", err)
	}
}

// IrregularityListener is implemented by presenters that also want to see
// irregularity periods as they close.
type IrregularityListener interface {
	IrregularityClosed(period models.Irregularity)
}

func (m *Monitor) recordIrregularity(now time.Time, period models.Irregularity) {
	m.closed = append(m.closed, period)
	m.logger.Printf("Irregularity on %s closed: %s to %s",
		period.Target, period.Start.Format(time.RFC3339), period.End.Format(time.RFC3339))

	if m.sink != nil {
		if err := m.sink.WriteIrregularity(now, period); err != nil {
			m.logger.Printf("Failed to write irregularity: %v", err)
		}
	}
	for _, p := range m.presenters {
		if l, ok := p.(IrregularityListener); ok {
			l.IrregularityClosed(period)
		}
	}
}

// MultiSink fans every write out to all of its sinks. A failing sink does not
// stop the others; errors are joined.
type MultiSink []models.Sink

// WriteSnapshot implements models.Sink
func (ms MultiSink) WriteSnapshot(snap models.Snapshot) error {
	var errs []error
	for _, s := range ms {
		if err := s.WriteSnapshot(snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteIrregularity implements models.Sink
func (ms MultiSink) WriteIrregularity(at time.Time, period models.Irregularity) error {
	var errs []error
	for _, s := range ms {
		if err := s.WriteIrregularity(at, period); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements models.Sink
func (ms MultiSink) Close() error {
	var errs []error
	for _, s := range ms {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

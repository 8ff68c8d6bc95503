package monitor

import (
	"time"

	"ping-monitor/internal/models"
)

// GracePeriod is how long a period stays open after the last breaching evaluation.
const GracePeriod = 5 * time.Minute

type period struct {
	open  bool
	start time.Time
	end   time.Time
}

// Tracker classifies each target as normal or degraded from its rolling
// average latency and reports periods once they close.
type Tracker struct {
	thresholdMs float64
	order       []string
	periods     map[string]*period
}

// NewTracker creates a Tracker for targets. A rolling average strictly above
// threshold is a breach.
func NewTracker(targets []string, threshold time.Duration) *Tracker {
	t := &Tracker{
		thresholdMs: models.Milliseconds(threshold),
		order:       append([]string(nil), targets...),
		periods:     make(map[string]*period, len(targets)),
	}
	for _, target := range targets {
		t.periods[target] = &period{}
	}
	return t
}

// Evaluate runs one classification step for target. Nothing happens until the
// window is full. A breach opens a period if needed and pushes its end to
// now+GracePeriod; a non-breaching step after the end closes the period and
// returns it.
func (t *Tracker) Evaluate(target string, w *LatencyWindow, now time.Time) *models.Irregularity {
	p, ok := t.periods[target]
	if !ok || w == nil || !w.Full() {
		return nil
	}

	if w.Average() > t.thresholdMs {
		if !p.open {
			p.open = true
			p.start = now
		}
		p.end = now.Add(GracePeriod)
		return nil
	}

	if p.open && now.After(p.end) {
		closed := &models.Irregularity{Target: target, Start: p.start, End: p.end}
		*p = period{}
		return closed
	}
	return nil
}

// Open returns a copy of target's open period, or nil.
func (t *Tracker) Open(target string) *models.Irregularity {
	p, ok := t.periods[target]
	if !ok || !p.open {
		return nil
	}
	return &models.Irregularity{Target: target, Start: p.start, End: p.end}
}

// OpenPeriods lists every open period in target registration order.
func (t *Tracker) OpenPeriods() []models.Irregularity {
	var out []models.Irregularity
	for _, target := range t.order {
		if p := t.Open(target); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

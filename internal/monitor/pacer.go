package monitor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// PacingInterval is the minimum spacing between the starts of two probes.
const PacingInterval = time.Second

// pacer spaces probe starts using a one-token bucket evaluated against the
// monitor's clock.
type pacer struct {
	limiter *rate.Limiter
	clock   Clock
}

func newPacer(interval time.Duration, clock Clock) *pacer {
	return &pacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		clock:   clock,
	}
}

// start takes the token for the first probe of the run.
func (p *pacer) start() {
	p.limiter.ReserveN(p.clock.Now(), 1)
}

// wait blocks until the next probe may start.
func (p *pacer) wait(ctx context.Context) error {
	now := p.clock.Now()
	r := p.limiter.ReserveN(now, 1)
	if !r.OK() {
		return fmt.Errorf("pacer: reservation exceeds burst")
	}
	if err := p.clock.Sleep(ctx, r.DelayFrom(now)); err != nil {
		r.CancelAt(now)
		return err
	}
	return nil
}

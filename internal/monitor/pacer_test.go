package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacerSpacesProbeStarts(t *testing.T) {
	clock := newFakeClock()
	p := newPacer(time.Second, clock)
	p.start()

	require.NoError(t, p.wait(context.Background()))
	assert.Equal(t, epoch.Add(time.Second), clock.Now())

	require.NoError(t, p.wait(context.Background()))
	assert.Equal(t, epoch.Add(2*time.Second), clock.Now())
}

func TestPacerDoesNotAddDelayAfterSlowProbe(t *testing.T) {
	clock := newFakeClock()
	p := newPacer(time.Second, clock)
	p.start()

	clock.now = clock.now.Add(3 * time.Second)
	require.NoError(t, p.wait(context.Background()))
	assert.Equal(t, epoch.Add(3*time.Second), clock.Now())
}

func TestPacerHonoursCancellation(t *testing.T) {
	clock := newFakeClock()
	p := newPacer(time.Second, clock)
	p.start()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.wait(ctx), context.Canceled)
	assert.Equal(t, epoch, clock.Now())
}

func TestRealClockSleep(t *testing.T) {
	var c realClock
	start := time.Now()
	require.NoError(t, c.Sleep(context.Background(), 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.Sleep(ctx, time.Hour))
}

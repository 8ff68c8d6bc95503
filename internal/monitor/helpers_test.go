package monitor

import (
	"context"
	"io"
	"log"
	"strconv"
	"time"

	"ping-monitor/internal/config"
	"ping-monitor/internal/models"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeClock advances only when slept on.
type fakeClock struct {
	now    time.Time
	sleeps int
}

func newFakeClock() *fakeClock { return &fakeClock{now: epoch} }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps++
	if d > 0 {
		c.now = c.now.Add(d)
	}
	return nil
}

// scriptedProber answers from a function and can simulate probe duration.
type scriptedProber struct {
	clock  *fakeClock
	elapse time.Duration
	answer func(target string, call int) models.ProbeResult
	calls  map[string]int
	order  []string
}

func (p *scriptedProber) Probe(ctx context.Context, target string, timeout time.Duration) models.ProbeResult {
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	call := p.calls[target]
	p.calls[target]++
	p.order = append(p.order, target)
	if p.clock != nil && p.elapse > 0 {
		p.clock.now = p.clock.now.Add(p.elapse)
	}
	return p.answer(target, call)
}

func alwaysLatency(ms float64) func(string, int) models.ProbeResult {
	return func(target string, _ int) models.ProbeResult {
		return models.Reached(target, epoch, time.Duration(ms*float64(time.Millisecond)))
	}
}

func alwaysDown(target string, _ int) models.ProbeResult {
	return models.Unreachable(target, epoch)
}

type recordedIrregularity struct {
	at     time.Time
	period models.Irregularity
}

// memorySink records writes; failSnapshots makes WriteSnapshot fail.
type memorySink struct {
	snapshots     []models.Snapshot
	irregular     []recordedIrregularity
	failSnapshots bool
	closed        bool
}

func (s *memorySink) WriteSnapshot(snap models.Snapshot) error {
	if s.failSnapshots {
		return io.ErrShortWrite
	}
	s.snapshots = append(s.snapshots, snap)
	return nil
}

func (s *memorySink) WriteIrregularity(at time.Time, period models.Irregularity) error {
	s.irregular = append(s.irregular, recordedIrregularity{at: at, period: period})
	return nil
}

func (s *memorySink) Close() error {
	s.closed = true
	return nil
}

type countingPresenter struct {
	renders []models.Snapshot
	closed  []models.Irregularity
	fail    bool
}

func (p *countingPresenter) Render(snap models.Snapshot) error {
	p.renders = append(p.renders, snap)
	if p.fail {
		return io.ErrClosedPipe
	}
	return nil
}

func (p *countingPresenter) IrregularityClosed(period models.Irregularity) {
	p.closed = append(p.closed, period)
}

func testConfig(targets []string, duration, save time.Duration) config.Config {
	return config.Config{
		Targets:             targets,
		Duration:            duration,
		SaveInterval:        save,
		Timeout:             time.Second,
		HighPingThreshold:   100 * time.Millisecond,
		PingLogPath:         config.DefaultPingLog,
		IrregularityLogPath: config.DefaultIrregularityLog,
		Prober:              config.ProberExec,
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

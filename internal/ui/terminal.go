package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"ping-monitor/internal/config"
	"ping-monitor/internal/models"
)

// Terminal renders the live counters to a terminal, redrawing the whole view
// on every snapshot.
type Terminal struct {
	out         *termenv.Output
	styles      styles
	interactive bool
}

// NewTerminal creates a terminal presenter writing to w. When interactive is
// false, Render is a no-op so piped output is not flooded with redraws.
func NewTerminal(w io.Writer, interactive bool) *Terminal {
	return &Terminal{
		out:         termenv.NewOutput(w),
		styles:      newStyles(lipgloss.NewRenderer(w)),
		interactive: interactive,
	}
}

// Render implements models.Presenter.
func (t *Terminal) Render(snap models.Snapshot) error {
	if !t.interactive {
		return nil
	}
	t.out.ClearScreen()
	_, err := io.WriteString(t.out, t.View(snap))
	return err
}

// View formats the counters of every target, in registration order.
func (t *Terminal) View(snap models.Snapshot) string {
	s := t.styles
	var b strings.Builder
	for _, ts := range snap.Targets {
		b.WriteString("IP: " + s.target.Render(ts.Target))
		if ts.Degraded() {
			since := ts.OpenIrregular.Start.Format(time.TimeOnly)
			b.WriteString("  " + s.degraded.Render("DEGRADED since "+since))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  Total Requests: %s\n", s.value.Render(fmt.Sprint(ts.Total())))
		fmt.Fprintf(&b, "  Successful: %s\n", s.value.Render(fmt.Sprint(ts.Successful)))
		fmt.Fprintf(&b, "  Timed Out: %s\n", s.value.Render(fmt.Sprint(ts.TimedOut)))
		fmt.Fprintf(&b, "  Timeout Percentage: %s\n", s.value.Render(fmt.Sprintf("%.2f%%", ts.TimeoutPercentage())))
		if ts.WindowFill > 0 {
			fmt.Fprintf(&b, "  Rolling Avg: %s %s\n",
				s.value.Render(fmt.Sprintf("%.2f ms", ts.RollingAvgMs)),
				s.muted.Render(fmt.Sprintf("(last %d)", ts.WindowFill)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Banner describes the run parameters before the monitor starts.
func (t *Terminal) Banner(cfg config.Config) string {
	s := t.styles
	var b strings.Builder
	fmt.Fprintf(&b, "Starting %s for %s seconds with the following parameters:\n",
		s.accent.Render("ping test"), s.value.Render(fmt.Sprint(int64(cfg.Duration/time.Second))))
	fmt.Fprintf(&b, "  Target IPs: %s\n", s.target.Render(strings.Join(cfg.Targets, ", ")))
	fmt.Fprintf(&b, "  Timeout duration: %s\n", s.value.Render(fmt.Sprintf("%d ms", cfg.Timeout.Milliseconds())))
	fmt.Fprintf(&b, "  High ping threshold: %s\n", s.value.Render(fmt.Sprintf("%d ms", cfg.HighPingThreshold.Milliseconds())))
	fmt.Fprintf(&b, "  Save interval: %s\n", s.value.Render(fmt.Sprintf("%d seconds", int64(cfg.SaveInterval/time.Second))))
	return b.String()
}

// Completed is printed once the run ends. stopped reports an early stop.
func (t *Terminal) Completed(stopped bool) string {
	if stopped {
		return "\n[!] Ping scan " + t.styles.value.Render("stopped") + " before the configured duration.\n"
	}
	return "\n[!] Ping scan completed " + t.styles.success.Render("successfully") + "!\n"
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

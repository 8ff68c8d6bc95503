package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"ping-monitor/internal/models"
)

const summaryTimeFormat = "2006-01-02 15:04:05"

// WriteSummary prints the end-of-run report: final counters per target, the
// irregularity periods that closed during the run and the ones still open.
func WriteSummary(w io.Writer, generated time.Time, final []models.TargetSnapshot, closed, open []models.Irregularity) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Ping Monitor Report\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format(summaryTimeFormat))
	fmt.Fprintf(&b, "Targets: %d\n\n", len(final))
	fmt.Fprintln(&b, strings.Repeat("=", 60))

	fmt.Fprintln(&b, "\nOVERALL STATISTICS")
	for _, t := range final {
		successPct := 0.0
		if t.Total() > 0 {
			successPct = 100 - t.TimeoutPercentage()
		}
		fmt.Fprintf(&b, "Target: %s\n", t.Target)
		fmt.Fprintf(&b, "  Total Requests: %d\n", t.Total())
		fmt.Fprintf(&b, "  Successful: %d (%.2f%%)\n", t.Successful, successPct)
		fmt.Fprintf(&b, "  Timed Out: %d (%.2f%%)\n", t.TimedOut, t.TimeoutPercentage())
		if t.WindowFill > 0 {
			fmt.Fprintf(&b, "  Rolling Avg: %.2f ms (last %d)\n", t.RollingAvgMs, t.WindowFill)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, strings.Repeat("=", 60))
	fmt.Fprintln(&b, "\nIRREGULARITY PERIODS (rolling average above threshold)")

	for i, p := range closed {
		writePeriod(&b, fmt.Sprintf("Irregularity #%d", i+1), p)
	}
	if len(closed) == 0 {
		fmt.Fprintln(&b, "No irregularities detected.")
	} else {
		fmt.Fprintf(&b, "\nTotal Irregularities: %d\n", len(closed))
	}

	if len(open) > 0 {
		fmt.Fprintln(&b, "\nSTILL OPEN AT END OF RUN (not persisted)")
		for _, p := range open {
			writePeriod(&b, "Open", p)
		}
	}

	fmt.Fprintln(&b, strings.Repeat("=", 60))

	_, err := io.WriteString(w, b.String())
	return err
}

func writePeriod(b *strings.Builder, title string, p models.Irregularity) {
	fmt.Fprintln(b, title)
	fmt.Fprintf(b, "  Target: %s\n", p.Target)
	fmt.Fprintf(b, "  Start: %s\n", p.Start.Format(summaryTimeFormat))
	fmt.Fprintf(b, "  End: %s\n", p.End.Format(summaryTimeFormat))
	fmt.Fprintf(b, "  Duration: %s\n", p.Duration())
	fmt.Fprintln(b)
}

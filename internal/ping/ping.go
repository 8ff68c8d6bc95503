package ping

import (
	"context"
	"math"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"time"

	"ping-monitor/internal/models"
)

// ExecProber probes by running the platform ping binary once per call.
type ExecProber struct {
	binary string
	goos   string
}

// NewExec creates an ExecProber using the ping binary found on PATH
func NewExec() *ExecProber {
	return &ExecProber{binary: "ping", goos: runtime.GOOS}
}

// Probe sends a single echo request to target. The command is killed when
// timeout expires; a non-zero exit or missing RTT counts as unreachable.
func (p *ExecProber) Probe(ctx context.Context, target string, timeout time.Duration) models.ProbeResult {
	now := time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary, p.args(target, timeout)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return models.Unreachable(target, now)
	}

	rtt, ok := parsePingOutput(string(output))
	if !ok {
		return models.Unreachable(target, now)
	}
	return models.Reached(target, now, rtt)
}

// args builds a single-probe, bounded-wait argument list for the platform
func (p *ExecProber) args(target string, timeout time.Duration) []string {
	if p.goos == "windows" {
		return []string{"-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), target}
	}
	// -W takes whole seconds; never pass 0, which some pings read as "wait forever".
	secs := int(math.Ceil(timeout.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return []string{"-c", "1", "-W", strconv.Itoa(secs), target}
}

// Linux/Mac: "time=XX.X ms"
// Windows: "time=XXms" or "time<1ms"
// Summary: "rtt min/avg/max/mdev = a/b/c/d ms" or "round-trip min/avg/max = a/b/c ms"
var rttPatterns = []*regexp.Regexp{
	regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
	regexp.MustCompile(`(?:rtt|round-trip) min/avg/max(?:/(?:stddev|mdev))? = [0-9.]+/([0-9.]+)/`),
}

// parsePingOutput extracts the round-trip time from ping output
func parsePingOutput(output string) (time.Duration, bool) {
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) < 2 {
			continue
		}
		ms, err := strconv.ParseFloat(matches[1], 64)
		if err != nil || ms < 0 {
			continue
		}
		return time.Duration(ms * float64(time.Millisecond)), true
	}
	return 0, false
}

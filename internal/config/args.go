package config

import (
	"fmt"
	"strconv"
	"time"
)

// MinArgs is the smallest accepted positional argument count: one target
// followed by the four numeric settings.
const MinArgs = 5

// Positional holds the values carried by the run command's positional arguments.
type Positional struct {
	Targets           []string
	Duration          time.Duration
	SaveInterval      time.Duration
	Timeout           time.Duration
	HighPingThreshold time.Duration
}

// ParseArgs splits `<target>... <durationSeconds> <saveIntervalSeconds>
// <timeoutMs> <highPingThresholdMs>` into a Positional. Any error wraps ErrUsage.
func ParseArgs(args []string) (Positional, error) {
	var p Positional
	if len(args) < MinArgs {
		return p, fmt.Errorf("%w: expected at least %d arguments, got %d", ErrUsage, MinArgs, len(args))
	}

	n := len(args)
	numeric := []struct {
		name string
		unit time.Duration
		dst  *time.Duration
	}{
		{"durationSeconds", time.Second, &p.Duration},
		{"saveIntervalSeconds", time.Second, &p.SaveInterval},
		{"timeoutMs", time.Millisecond, &p.Timeout},
		{"highPingThresholdMs", time.Millisecond, &p.HighPingThreshold},
	}
	for i, field := range numeric {
		raw := args[n-len(numeric)+i]
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Positional{}, fmt.Errorf("%w: %s must be an integer, got %q", ErrUsage, field.name, raw)
		}
		*field.dst = time.Duration(v) * field.unit
	}

	p.Targets = append([]string(nil), args[:n-len(numeric)]...)
	return p, nil
}

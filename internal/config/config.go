package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrUsage marks malformed command-line input. Callers print usage and exit
// non-zero without starting the monitor.
var ErrUsage = errors.New("usage error")

// Prober selection modes
const (
	ProberAuto = "auto"
	ProberICMP = "icmp"
	ProberExec = "exec"
)

// Config holds all configuration for a monitoring run
type Config struct {
	Targets           []string
	Duration          time.Duration
	SaveInterval      time.Duration
	Timeout           time.Duration
	HighPingThreshold time.Duration

	PingLogPath         string
	IrregularityLogPath string
	DatabasePath        string
	DatabaseRetention   time.Duration
	ChartDir            string
	Listen              string
	LogFile             string
	Prober              string
	AssumeYes           bool
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one target must be specified")
	}
	seen := make(map[string]struct{}, len(c.Targets))
	for _, t := range c.Targets {
		if t == "" {
			return fmt.Errorf("target cannot be empty")
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("target %q listed more than once", t)
		}
		seen[t] = struct{}{}
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if c.SaveInterval <= 0 {
		return fmt.Errorf("save interval must be positive")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.HighPingThreshold <= 0 {
		return fmt.Errorf("high ping threshold must be positive")
	}
	if c.PingLogPath == "" {
		return fmt.Errorf("ping log path cannot be empty")
	}
	if c.IrregularityLogPath == "" {
		return fmt.Errorf("irregularities log path cannot be empty")
	}
	if c.PingLogPath == c.IrregularityLogPath {
		return fmt.Errorf("ping log and irregularities log must be different files")
	}
	if c.DatabaseRetention < 0 {
		return fmt.Errorf("database retention cannot be negative")
	}
	switch c.Prober {
	case ProberAuto, ProberICMP, ProberExec:
	default:
		return fmt.Errorf("prober must be one of %s, %s, %s", ProberAuto, ProberICMP, ProberExec)
	}
	return nil
}

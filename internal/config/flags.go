package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Keys of the optional settings. Each is also a flag name and, upper-cased with
// the PING_MONITOR_ prefix, an environment variable.
const (
	KeyPingLog         = "ping-log"
	KeyIrregularityLog = "irregularities-log"
	KeyDatabase        = "db"
	KeyDBRetention     = "db-retention"
	KeyChartDir        = "chart-dir"
	KeyListen          = "listen"
	KeyLogFile         = "log-file"
	KeyProber          = "prober"
	KeyYes             = "yes"
)

const envPrefix = "PING_MONITOR"

// Default file names match the historical log layout.
const (
	DefaultPingLog         = "ping_log.csv"
	DefaultIrregularityLog = "irregularities_log.csv"
)

// NewViper returns a viper instance with defaults and environment lookup set up.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyPingLog, DefaultPingLog)
	v.SetDefault(KeyIrregularityLog, DefaultIrregularityLog)
	v.SetDefault(KeyProber, ProberAuto)
	return v
}

// ReadFile merges an optional YAML config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %q: %w", path, err)
	}
	return nil
}

// Build combines the positional arguments with the optional settings from v
// and validates the result.
func Build(p Positional, v *viper.Viper) (Config, error) {
	cfg := Config{
		Targets:             p.Targets,
		Duration:            p.Duration,
		SaveInterval:        p.SaveInterval,
		Timeout:             p.Timeout,
		HighPingThreshold:   p.HighPingThreshold,
		PingLogPath:         v.GetString(KeyPingLog),
		IrregularityLogPath: v.GetString(KeyIrregularityLog),
		DatabasePath:        v.GetString(KeyDatabase),
		DatabaseRetention:   v.GetDuration(KeyDBRetention),
		ChartDir:            v.GetString(KeyChartDir),
		Listen:              v.GetString(KeyListen),
		LogFile:             v.GetString(KeyLogFile),
		Prober:              strings.ToLower(v.GetString(KeyProber)),
		AssumeYes:           v.GetBool(KeyYes),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

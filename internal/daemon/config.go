// Package daemon loads configuration and wires the monitor together.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tutu-network/batmon/internal/infra/alert"
	"github.com/tutu-network/batmon/internal/infra/powersupply"
	"github.com/tutu-network/batmon/internal/infra/statefile"
)

// Config holds all batmon configuration.
type Config struct {
	Battery BatteryConfig `toml:"battery"`
	State   StateConfig   `toml:"state"`
	Retry   RetryConfig   `toml:"retry"`
	Actions alert.Actions `toml:"actions"`
	Logging LoggingConfig `toml:"logging"`
	Metrics MetricsConfig `toml:"metrics"`
}

// BatteryConfig selects the telemetry source.
type BatteryConfig struct {
	Source     string `toml:"source"` // uevent or distatus
	UeventPath string `toml:"uevent_path"`
	Index      int    `toml:"index"` // distatus battery index
}

// StateConfig controls state persistence.
type StateConfig struct {
	Path         string `toml:"path"`
	SessionScope string `toml:"session_scope"` // sid, pgid or ppid
}

// RetryConfig controls zero-current retries.
type RetryConfig struct {
	Attempts int    `toml:"attempts"`
	Delay    string `toml:"delay"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"` // empty or "-" means stderr
	MaxSizeMB int    `toml:"max_size_mb"`
	MaxFiles  int    `toml:"max_files"`
}

// MetricsConfig controls the optional Prometheus textfile.
type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

// DefaultConfig returns the historical defaults.
func DefaultConfig() Config {
	return Config{
		Battery: BatteryConfig{
			Source:     string(powersupply.KindUevent),
			UeventPath: powersupply.DefaultUeventPath,
		},
		State: StateConfig{
			Path:         statefile.DefaultPath,
			SessionScope: "sid",
		},
		Retry: RetryConfig{
			Attempts: 2,
			Delay:    "5s",
		},
		Actions: alert.DefaultActions(),
		Logging: LoggingConfig{
			Level:     "warn",
			MaxSizeMB: 5,
			MaxFiles:  3,
		},
	}
}

// DefaultConfigPath is ~/.batmon/config.toml unless BATMON_HOME is set.
func DefaultConfigPath() string {
	return filepath.Join(batmonHome(), "config.toml")
}

// LoadConfig reads config from path, falling back to defaults when the file
// does not exist. Empty path means DefaultConfigPath.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.RetryDelay(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig writes the config to path.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// RetryDelay parses Retry.Delay.
func (c Config) RetryDelay() (time.Duration, error) {
	if c.Retry.Delay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Retry.Delay)
	if err != nil {
		return 0, fmt.Errorf("retry delay %q: %w", c.Retry.Delay, err)
	}
	return d, nil
}

// batmonHome returns the batmon config directory.
func batmonHome() string {
	if env := os.Getenv("BATMON_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".batmon")
}

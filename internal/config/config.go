// Package config provides configuration management for the sell monitor.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Exit    ExitConfig    `mapstructure:"exit"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Quotes  QuotesConfig  `mapstructure:"quotes"`
	Notify  NotifyConfig  `mapstructure:"notify"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ExitConfig holds the exit-strategy criteria. All percentages are in
// (0, 100]; MaxHoldDays is a positive day count.
type ExitConfig struct {
	TargetReturnPct float64 `mapstructure:"target_return_pct"`
	StopLossPct     float64 `mapstructure:"stop_loss_pct"`
	TrailingStopPct float64 `mapstructure:"trailing_stop_pct"`
	MaxHoldDays     int     `mapstructure:"max_hold_days"`
}

// MonitorConfig holds the evaluation loop configuration.
type MonitorConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	PositionsFile string        `mapstructure:"positions_file"`
}

// QuotesConfig holds market data provider configuration.
type QuotesConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxWorkers int           `mapstructure:"max_workers"`
}

// NotifyConfig holds sell alert delivery configuration. Both channels are
// off by default; the alert log itself needs no configuration.
type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Desktop    bool   `mapstructure:"desktop"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfig returns the built-in defaults, mirroring the classic
// 20/10/5/180 exit criteria.
func DefaultConfig() *Config {
	return &Config{
		Exit: ExitConfig{
			TargetReturnPct: 20,
			StopLossPct:     10,
			TrailingStopPct: 5,
			MaxHoldDays:     180,
		},
		Monitor: MonitorConfig{
			Interval: 60 * time.Second,
		},
		Quotes: QuotesConfig{
			Timeout:    5 * time.Second,
			MaxWorkers: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			File:    true,
		},
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/sell-monitor"
	}
	return filepath.Join(home, ".config", "sell-monitor")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write a template so the user has something to edit.
			if werr := writeTemplate(configDir); werr != nil {
				return nil, fmt.Errorf("writing config template: %w", werr)
			}
		} else {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("exit.target_return_pct", cfg.Exit.TargetReturnPct)
	v.SetDefault("exit.stop_loss_pct", cfg.Exit.StopLossPct)
	v.SetDefault("exit.trailing_stop_pct", cfg.Exit.TrailingStopPct)
	v.SetDefault("exit.max_hold_days", cfg.Exit.MaxHoldDays)
	v.SetDefault("monitor.interval", cfg.Monitor.Interval)
	v.SetDefault("monitor.positions_file", cfg.Monitor.PositionsFile)
	v.SetDefault("quotes.timeout", cfg.Quotes.Timeout)
	v.SetDefault("quotes.max_workers", cfg.Quotes.MaxWorkers)
	v.SetDefault("notify.webhook_url", cfg.Notify.WebhookURL)
	v.SetDefault("notify.desktop", cfg.Notify.Desktop)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.console", cfg.Logging.Console)
	v.SetDefault("logging.file", cfg.Logging.File)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SELLMONITOR_POSITIONS"); v != "" {
		cfg.Monitor.PositionsFile = v
	}
	if v := os.Getenv("SELLMONITOR_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration. Thresholds are rejected here, at the
// configuration boundary, so the engine can assume validated criteria.
func (c *Config) Validate() error {
	if c.Exit.TargetReturnPct <= 0 || c.Exit.TargetReturnPct > 100 {
		return fmt.Errorf("exit.target_return_pct must be in (0, 100], got %.2f", c.Exit.TargetReturnPct)
	}
	if c.Exit.StopLossPct <= 0 || c.Exit.StopLossPct > 100 {
		return fmt.Errorf("exit.stop_loss_pct must be in (0, 100], got %.2f", c.Exit.StopLossPct)
	}
	if c.Exit.TrailingStopPct <= 0 || c.Exit.TrailingStopPct > 100 {
		return fmt.Errorf("exit.trailing_stop_pct must be in (0, 100], got %.2f", c.Exit.TrailingStopPct)
	}
	if c.Exit.MaxHoldDays < 1 {
		return fmt.Errorf("exit.max_hold_days must be at least 1, got %d", c.Exit.MaxHoldDays)
	}
	if c.Monitor.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be positive, got %s", c.Monitor.Interval)
	}
	if c.Quotes.Timeout <= 0 {
		return fmt.Errorf("quotes.timeout must be positive, got %s", c.Quotes.Timeout)
	}
	if c.Quotes.MaxWorkers < 1 {
		return fmt.Errorf("quotes.max_workers must be at least 1, got %d", c.Quotes.MaxWorkers)
	}
	return nil
}

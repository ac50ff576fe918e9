package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvMonitorEnabled  = "BEADREADER_MONITOR_ENABLED"
	EnvMonitorInterval = "BEADREADER_MONITOR_INTERVAL"
	EnvMonitorURL      = "BEADREADER_MONITOR_URL"
)

// MonitorConfig drives periodic capture from a snapshot endpoint.
type MonitorConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
	URL      string `toml:"url"`
}

// IntervalDuration returns Interval as a time.Duration.
func (c *MonitorConfig) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.Interval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *MonitorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *MonitorConfig) Merge(overlay *MonitorConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Interval != "" {
		c.Interval = overlay.Interval
	}
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
}

func (c *MonitorConfig) loadDefaults() {
	if c.Interval == "" {
		c.Interval = "4s"
	}
}

func (c *MonitorConfig) loadEnv() {
	if v := os.Getenv(EnvMonitorEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvMonitorInterval); v != "" {
		c.Interval = v
	}
	if v := os.Getenv(EnvMonitorURL); v != "" {
		c.URL = v
	}
}

func (c *MonitorConfig) validate() error {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if c.Enabled && c.URL == "" {
		return fmt.Errorf("url required when enabled")
	}
	return nil
}

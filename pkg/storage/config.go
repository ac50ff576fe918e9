package storage

import (
	"fmt"
	"os"
	"strconv"
)

// MaxPurgeConcurrency caps parallel blob deletes during a prefix purge.
const MaxPurgeConcurrency = 32

// Config holds Azure Blob Storage connection parameters.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	PurgeConcurrency int    `toml:"purge_concurrency"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ContainerName    string
	ConnectionString string
	PurgeConcurrency string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.PurgeConcurrency != 0 {
		c.PurgeConcurrency = overlay.PurgeConcurrency
	}
}

func (c *Config) loadDefaults() {
	if c.ContainerName == "" {
		c.ContainerName = "frames"
	}
	if c.PurgeConcurrency <= 0 {
		c.PurgeConcurrency = 8
	}
	c.PurgeConcurrency = min(c.PurgeConcurrency, MaxPurgeConcurrency)
}

func (c *Config) loadEnv(env *Env) {
	if env.ContainerName != "" {
		if v := os.Getenv(env.ContainerName); v != "" {
			c.ContainerName = v
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
	if env.PurgeConcurrency != "" {
		if v := os.Getenv(env.PurgeConcurrency); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.PurgeConcurrency = min(n, MaxPurgeConcurrency)
			}
		}
	}
}

func (c *Config) validate() error {
	if c.ContainerName == "" {
		return fmt.Errorf("container_name required")
	}
	if c.ConnectionString == "" {
		return fmt.Errorf("connection_string required")
	}
	return nil
}

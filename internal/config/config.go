// Package config loads the beadreader service configuration from TOML files
// and BEADREADER_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/beadreader/pkg/database"
	"github.com/JaimeStill/beadreader/pkg/guard"
	"github.com/JaimeStill/beadreader/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvBeadreaderEnv             = "BEADREADER_ENV"
	EnvBeadreaderShutdownTimeout = "BEADREADER_SHUTDOWN_TIMEOUT"
	EnvBeadreaderVersion         = "BEADREADER_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "BEADREADER_DB_HOST",
	Port:            "BEADREADER_DB_PORT",
	Name:            "BEADREADER_DB_NAME",
	User:            "BEADREADER_DB_USER",
	Password:        "BEADREADER_DB_PASSWORD",
	SSLMode:         "BEADREADER_DB_SSL_MODE",
	MaxOpenConns:    "BEADREADER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "BEADREADER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "BEADREADER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "BEADREADER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "BEADREADER_STORAGE_CONTAINER_NAME",
	ConnectionString: "BEADREADER_STORAGE_CONNECTION_STRING",
	PurgeConcurrency: "BEADREADER_STORAGE_PURGE_CONCURRENCY",
}

var guardEnv = &guard.Env{
	Backend:  "BEADREADER_GUARD_BACKEND",
	Addr:     "BEADREADER_GUARD_ADDR",
	Password: "BEADREADER_GUARD_PASSWORD",
	DB:       "BEADREADER_GUARD_DB",
	Prefix:   "BEADREADER_GUARD_PREFIX",
	TTL:      "BEADREADER_GUARD_TTL",
}

// Config is the root configuration for the beadreader service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	API             APIConfig            `toml:"api"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	Analysis        AnalysisConfig       `toml:"analysis"`
	Guard           guard.Config         `toml:"guard"`
	Monitor         MonitorConfig        `toml:"monitor"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the BEADREADER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvBeadreaderEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadInference reads the same files as Load but finalizes only the sections
// a standalone scanner needs: agent, analysis, and monitor. Database, storage,
// and guard settings are left untouched and unvalidated.
func LoadInference() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := FinalizeAgent(&cfg.Agent); err != nil {
		return nil, fmt.Errorf("finalize config: agent: %w", err)
	}
	if err := cfg.Analysis.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: analysis: %w", err)
	}
	if err := cfg.Monitor.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: monitor: %w", err)
	}

	return cfg, nil
}

func read() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Agent.Merge(&overlay.Agent)
	c.Analysis.Merge(&overlay.Analysis)
	c.Guard.Merge(&overlay.Guard)
	c.Monitor.Merge(&overlay.Monitor)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := FinalizeAgent(&c.Agent); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if err := c.Analysis.Finalize(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := c.Guard.Finalize(guardEnv); err != nil {
		return fmt.Errorf("guard: %w", err)
	}
	if err := c.Monitor.Finalize(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBeadreaderShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvBeadreaderVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvBeadreaderEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

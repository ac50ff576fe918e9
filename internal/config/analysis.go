package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvAnalysisTemperature = "BEADREADER_ANALYSIS_TEMPERATURE"
	EnvAnalysisTopK        = "BEADREADER_ANALYSIS_TOP_K"
)

// AnalysisConfig holds the sampling options sent with every vision request.
// Both values are deliberately low so repeated reads of one frame agree.
// Temperature is a pointer so an explicit 0 is distinguishable from unset.
type AnalysisConfig struct {
	Temperature *float64 `toml:"temperature"`
	TopK        int      `toml:"top_k"`
}

// TemperatureValue returns Temperature, or 0.1 when it is unset.
func (c *AnalysisConfig) TemperatureValue() float64 {
	if c.Temperature == nil {
		return 0.1
	}
	return *c.Temperature
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AnalysisConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AnalysisConfig) Merge(overlay *AnalysisConfig) {
	if overlay.Temperature != nil {
		c.Temperature = new(*overlay.Temperature)
	}
	if overlay.TopK != 0 {
		c.TopK = overlay.TopK
	}
}

func (c *AnalysisConfig) loadDefaults() {
	if c.Temperature == nil {
		c.Temperature = new(0.1)
	}
	if c.TopK == 0 {
		c.TopK = 1
	}
}

func (c *AnalysisConfig) loadEnv() {
	if v := os.Getenv(EnvAnalysisTemperature); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = &f
		}
	}
	if v := os.Getenv(EnvAnalysisTopK); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TopK = n
		}
	}
}

func (c *AnalysisConfig) validate() error {
	if t := c.TemperatureValue(); t < 0 || t > 2 {
		return fmt.Errorf("temperature out of range: %v", t)
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive")
	}
	return nil
}

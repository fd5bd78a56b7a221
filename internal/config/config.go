// Package config holds persistent defaults for dirrank.
package config

import (
	"fmt"
	"slices"
	"time"
)

// Config holds the settings that flags fall back to.
type Config struct {
	// Reporting
	TopN      int    `yaml:"top_n"`
	Format    string `yaml:"format"`
	OutputDir string `yaml:"output_dir"`

	// Scanning
	Jobs             int           `yaml:"jobs"`
	ProgressInterval time.Duration `yaml:"progress_interval"`

	// Diagnostics
	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"log_file"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		TopN:             10,
		Format:           "csv",
		OutputDir:        ".",
		Jobs:             1,
		ProgressInterval: 500 * time.Millisecond,
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate(formats []string) error {
	if !slices.Contains(formats, c.Format) {
		return fmt.Errorf("invalid output format %q: must be one of %v", c.Format, formats)
	}

	if c.TopN < 0 {
		return fmt.Errorf("top cannot be negative: %d", c.TopN)
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1: %d", c.Jobs)
	}

	if c.ProgressInterval < 0 {
		return fmt.Errorf("progress interval cannot be negative: %v", c.ProgressInterval)
	}

	return nil
}

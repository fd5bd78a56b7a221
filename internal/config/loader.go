package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns $XDG_CONFIG_HOME/dirrank/config.yaml, falling back to ~/.config.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dirrank", "config.yaml")
	}

	home, _ := os.UserHomeDir()

	return filepath.Join(home, ".config", "dirrank", "config.yaml")
}

// Load reads config from path, returning defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.OutputDir = ExpandHome(cfg.OutputDir)
	cfg.LogFile = ExpandHome(cfg.LogFile)

	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ExpandHome replaces a leading ~ or ~/ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		home, _ := os.UserHomeDir()

		return home
	}

	if len(path) > 1 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()

		return filepath.Join(home, path[2:])
	}

	return path
}

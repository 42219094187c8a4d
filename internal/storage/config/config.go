// Package config persists the installer's own settings: which launcher the
// user targets and which modpack source and branch they track.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Config holds the persisted installer settings.
type Config struct {
	Launcher string `yaml:"launcher"`
	Source   string `yaml:"source,omitempty"`
	Branch   string `yaml:"branch,omitempty"`
}

// Load reads configuration from the given directory, returning defaults
// when no file exists yet.
func Load(configDir string) (*Config, error) {
	cfg := &Config{
		Launcher: "vanilla",
		Branch:   "master",
	}

	data, err := os.ReadFile(filepath.Join(configDir, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes configuration to the given directory.
func (c *Config) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, fileName), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

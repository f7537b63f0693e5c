// Package config loads dugout settings from an embedded default YAML overlaid
// by an optional user file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all user-tunable settings.
type Config struct {
	Team   TeamConfig   `yaml:"team"`
	Export ExportConfig `yaml:"export"`
	Lineup LineupConfig `yaml:"lineup"`
	Shell  ShellConfig  `yaml:"shell"`
}

// TeamConfig holds team defaults.
type TeamConfig struct {
	Name string `yaml:"name"` // used until a name is stored, and when a blank name is set
}

// ExportConfig holds default output file names.
type ExportConfig struct {
	StatsFile  string `yaml:"stats_file"`
	BackupFile string `yaml:"backup_file"`
}

// LineupConfig holds batting-order defaults.
type LineupConfig struct {
	MaxBatters int `yaml:"max_batters"`
}

// ShellConfig controls the interactive shell.
type ShellConfig struct {
	Color bool `yaml:"color"`
}

// Load returns the embedded defaults overlaid with the file at path.
// An empty path loads the defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Team.Name = strings.TrimSpace(c.Team.Name)
	if c.Team.Name == "" {
		return fmt.Errorf("config: team.name must not be empty")
	}
	if c.Lineup.MaxBatters < 0 {
		return fmt.Errorf("config: lineup.max_batters must be >= 0, got %d", c.Lineup.MaxBatters)
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteYAML saves the effective configuration.
func (c *Config) WriteYAML(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

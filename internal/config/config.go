// Package config loads niri-action's configuration: the picker command
// line and the workspace-name → working-directory mapping used by
// workspace-exec.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/niri-action"
	DefaultConfigFile = "config.yaml"
)

// PickerConfig is the external selector command line.
type PickerConfig struct {
	Command string   `yaml:"command" json:"command"`
	Args    []string `yaml:"args" json:"args"`
}

// Config is the full on-disk configuration.
type Config struct {
	Picker PickerConfig `yaml:"picker" json:"picker"`
	// DefaultDir is where workspace-exec lands when the focused
	// workspace has no mapping (or no name).
	DefaultDir string `yaml:"defaultDir" json:"defaultDir"`
	// Workspaces maps workspace names to working directories.
	Workspaces map[string]string `yaml:"workspaces" json:"workspaces"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Picker:     PickerConfig{Command: "fuzzel", Args: []string{"--dmenu"}},
		DefaultDir: "~",
	}
}

// Load loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/niri-action/config.yaml; a missing
// default file is not an error and yields Default().
// Supports both .yaml and .json extensions.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the loaded configuration for unusable entries.
func (c *Config) Validate() error {
	if c.Picker.Command == "" {
		return fmt.Errorf("picker.command must not be empty")
	}
	for name, dir := range c.Workspaces {
		if name == "" {
			return fmt.Errorf("workspaces contains an entry with an empty name")
		}
		if dir == "" {
			return fmt.Errorf("workspace %q maps to an empty directory", name)
		}
	}
	return nil
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// DirFor returns the working directory mapped to a workspace name, or
// the default directory when the name is unknown or empty.
func (c *Config) DirFor(name string) string {
	if name != "" {
		if dir, ok := c.Workspaces[name]; ok {
			return expandTilde(dir)
		}
	}
	return expandTilde(c.DefaultDir)
}

// expandTilde resolves a leading ~ against the user's home directory.
func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

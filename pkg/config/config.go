// Package config handles loading and managing setscore configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/setscore/setscore/pkg/scoring"
)

// Config is the top-level configuration for setscore.
type Config struct {
	Language string        `yaml:"language"`
	Theme    string        `yaml:"theme"`
	Autosave bool          `yaml:"autosave"`
	Store    StoreConfig   `yaml:"store"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Scoring  scoring.Rules `yaml:"scoring"`
	Share    ShareConfig   `yaml:"share"`
}

// StoreConfig controls where predictions are persisted.
type StoreConfig struct {
	Path string `yaml:"path"` // sqlite database file; empty = default data dir
}

// CatalogConfig points at the bundled reference datasets.
type CatalogConfig struct {
	Path string `yaml:"path"` // catalog JSON file
}

// ShareConfig controls share URL generation.
type ShareConfig struct {
	BaseURL string `yaml:"base_url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Language: "en",
		Theme:    "system",
		Autosave: true,
		Scoring:  scoring.DefaultRules(),
		Share: ShareConfig{
			BaseURL: "https://setscore.app/share",
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("config scoring rules: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .setscore/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".setscore", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// DataDir returns the default data directory for the local store.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "share", "setscore")
}

// StorePath resolves the sqlite database path, honoring the config
// override.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(), "setscore.db")
}

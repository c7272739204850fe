// Package config handles configuration loading and validation for curlbaby.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// History backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the application configuration.
type Config struct {
	Prompt  string        `yaml:"prompt" toml:"prompt"`
	Banner  bool          `yaml:"banner" toml:"banner"`
	History HistoryConfig `yaml:"history" toml:"history"`
	DataDir string        `yaml:"-" toml:"-"` // set by caller, not from config file
}

// HistoryConfig controls command history persistence.
type HistoryConfig struct {
	// Backend is one of file, sqlite or memory.
	Backend string `yaml:"backend" toml:"backend"`
	// File overrides the default location inside the data directory.
	File string `yaml:"file" toml:"file"`
	// MaxEntries caps retained commands; -1 keeps everything.
	MaxEntries int `yaml:"max_entries" toml:"max_entries"`
	// Ignore lists glob patterns for commands that are never recorded.
	Ignore []string `yaml:"ignore" toml:"ignore"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Prompt: "> ",
		Banner: true,
		History: HistoryConfig{
			Backend:    BackendFile,
			MaxEntries: 100,
			Ignore:     []string{},
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Parse(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Parse reads configuration like Load but does not validate it.
func Parse(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := unmarshal(configPath, data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	return &cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Prompt == "" {
		c.Prompt = defaults.Prompt
	}
	if c.History.Backend == "" {
		c.History.Backend = defaults.History.Backend
	}
	if c.History.MaxEntries == 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}
	c.History.File = expandHome(c.History.File)
}

// HistoryPath returns the file used by the file and sqlite backends.
func (c *Config) HistoryPath() string {
	if c.History.File != "" {
		return c.History.File
	}
	if c.History.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, "history.db")
	}
	return filepath.Join(c.DataDir, "history")
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

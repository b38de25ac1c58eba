package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the marlea configuration
type Config struct {
	Output        string      `yaml:"output,omitempty"`     // console, json, yaml or text
	OutputFile    string      `yaml:"outputFile,omitempty"` // default: stdout
	Extensions    []string    `yaml:"extensions,omitempty"` // Network file extensions
	Verbose       *bool       `yaml:"verbose,omitempty"`
	NoColor       *bool       `yaml:"noColor,omitempty"`
	Database      string      `yaml:"database,omitempty"`      // Connection string for export
	WatchDebounce int         `yaml:"watchDebounce,omitempty"` // milliseconds
	Bench         BenchConfig `yaml:"bench,omitempty"`
}

// BenchConfig holds the defaults for the bench command
type BenchConfig struct {
	Iterations  int     `yaml:"iterations,omitempty"`
	Concurrency int     `yaml:"concurrency,omitempty"`
	Rate        float64 `yaml:"rate,omitempty"` // parses per second, 0 means unlimited
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetWatchDebounce returns the watch debounce as a duration
func (c *Config) GetWatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounce) * time.Millisecond
}

// IsNetworkFile reports whether path has one of the configured extensions
func (c *Config) IsNetworkFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".marlea.yaml",
	".marlea.yml",
	"marlea.yaml",
	"marlea.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Output != "" {
		result.Output = other.Output
	}
	if other.OutputFile != "" {
		result.OutputFile = other.OutputFile
	}
	if len(other.Extensions) > 0 {
		result.Extensions = other.Extensions
	}
	if other.Database != "" {
		result.Database = other.Database
	}
	if other.WatchDebounce > 0 {
		result.WatchDebounce = other.WatchDebounce
	}
	if other.Bench.Iterations > 0 {
		result.Bench.Iterations = other.Bench.Iterations
	}
	if other.Bench.Concurrency > 0 {
		result.Bench.Concurrency = other.Bench.Concurrency
	}
	if other.Bench.Rate > 0 {
		result.Bench.Rate = other.Bench.Rate
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"service-estimator/internal/errors"
	"service-estimator/internal/logging"
)

// AppDir is the per-user directory holding config and history
const AppDir = ".service-estimator"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog selects the catalogue used when none is given
	Catalog CatalogConfig `json:"catalog"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Storage selects the estimate history backend
	Storage StorageConfig `json:"storage"`

	// Engine tunes the calculation engine
	Engine EngineConfig `json:"engine"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig contains catalogue settings
type CatalogConfig struct {
	// Path is the default catalogue file; empty uses the built-in catalogue
	Path string `json:"path,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is cli or json
	DefaultFormat string `json:"default_format"`

	// CurrencySymbol prefixes money in cli output
	CurrencySymbol string `json:"currency_symbol"`

	// NoColor disables terminal colours
	NoColor bool `json:"no_color"`

	// ShowAssumptions lists the fallbacks the engine applied
	ShowAssumptions bool `json:"show_assumptions"`
}

// StorageConfig contains estimate history settings
type StorageConfig struct {
	// Backend is file, memory or sqlite
	Backend string `json:"backend"`

	// Path is the directory (file) or database file (sqlite)
	Path string `json:"path"`
}

// EngineConfig contains calculation settings
type EngineConfig struct {
	// SweepWorkers bounds concurrent scenario computations
	SweepWorkers int `json:"sweep_workers"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, AppDir, "history.db")

	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat:   "cli",
			CurrencySymbol:  "€",
			ShowAssumptions: true,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    dbPath,
		},
		Engine: EngineConfig{
			SweepWorkers: 4,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath is the config file location in the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, AppDir, "config.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("read config file", err).WithContext("path", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Config("parse config file", err).WithContext("path", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the enumerated settings
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return errors.Config(fmt.Sprintf("unknown output format %q", c.Output.DefaultFormat), nil)
	}

	switch c.Storage.Backend {
	case "file", "memory", "sqlite":
	default:
		return errors.Config(fmt.Sprintf("unknown storage backend %q", c.Storage.Backend), nil)
	}

	if c.Engine.SweepWorkers < 1 {
		return errors.Config("sweep_workers must be at least 1", nil)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("create config directory", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Config("marshal config", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("write config file", err)
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

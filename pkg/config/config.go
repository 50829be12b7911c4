// Package config provides configuration loading and management for qmrelax.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Analysis parameters
	Analysis struct {
		// Unit is the default unit applied to T1/T2 parameter ROIs
		Unit string `yaml:"unit"`

		// SortMode orders the tissues of a segmentation by mask volume:
		// "none", "increasing" or "decreasing"
		SortMode string `yaml:"sortMode"`

		// HistogramBins is the bin count for parameter histograms
		HistogramBins int `yaml:"histogramBins"`
	} `yaml:"analysis"`

	// Input parameters
	Input struct {
		// MaskThreshold converts a loaded mask volume into a boolean
		// mask: voxels strictly above the threshold belong to the tissue
		MaskThreshold float64 `yaml:"maskThreshold"`
	} `yaml:"input"`

	// Colors maps tissue names to display color overrides, taking
	// precedence over the canonical tissue-color table
	Colors map[string]string `yaml:"colors"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default analysis parameters
	cfg.Analysis.Unit = "seconds"
	cfg.Analysis.SortMode = "decreasing"
	cfg.Analysis.HistogramBins = 60

	// Set default input parameters
	cfg.Input.MaskThreshold = 0.5

	// Set default output parameters
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

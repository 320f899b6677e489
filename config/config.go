// Package config provides configuration loading and management for the
// heritage provenance service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete service configuration
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Import  ImportConfig  `yaml:"import"`
	NATS    NATSConfig    `yaml:"nats"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// StoreConfig configures the graph store
type StoreConfig struct {
	// DataDir holds RDF snapshot files loaded at startup and on change
	DataDir string `yaml:"data_dir"`
	// Watch enables reloading snapshot files as they appear or change.
	// Unset means enabled.
	Watch *bool `yaml:"watch"`
	// ExportFormat is the default serialization for exports (turtle,
	// ntriples, rdfxml, jsonld)
	ExportFormat string `yaml:"export_format"`
}

// ImportConfig configures EDM harvest ingestion
type ImportConfig struct {
	// Timeout bounds one harvest download
	Timeout time.Duration `yaml:"timeout"`
	// MaxContentSize caps a harvest document's size in bytes
	MaxContentSize int64 `yaml:"max_content_size"`
}

// NATSConfig configures the graph stream connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = no graph publishing)
	URL string `yaml:"url"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DataDir:      "data",
			ExportFormat: "turtle",
		},
		Import: ImportConfig{
			Timeout:        30 * time.Second,
			MaxContentSize: 100 * 1024 * 1024,
		},
		NATS: NATSConfig{
			URL: "",
		},
		Metrics: MetricsConfig{
			Addr: ":9464",
		},
	}
}

// WatchEnabled reports whether snapshot watching is on. Unset means enabled.
func (sc StoreConfig) WatchEnabled() bool {
	return sc.Watch == nil || *sc.Watch
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Store.DataDir == "" {
		return fmt.Errorf("store.data_dir is required")
	}
	if c.Import.Timeout <= 0 {
		return fmt.Errorf("import.timeout must be positive")
	}
	if c.Import.MaxContentSize <= 0 {
		return fmt.Errorf("import.max_content_size must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Store.DataDir != "" {
		c.Store.DataDir = other.Store.DataDir
	}
	if other.Store.ExportFormat != "" {
		c.Store.ExportFormat = other.Store.ExportFormat
	}
	if other.Store.Watch != nil {
		c.Store.Watch = other.Store.Watch
	}

	if other.Import.Timeout != 0 {
		c.Import.Timeout = other.Import.Timeout
	}
	if other.Import.MaxContentSize != 0 {
		c.Import.MaxContentSize = other.Import.MaxContentSize
	}

	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}

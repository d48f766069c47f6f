// Package config loads cura's layered configuration: defaults first, then
// config files (system, then user, then project), then CURA_* environment
// variables on top.
package config

import (
	"time"
)

// Config is the resolved cura configuration.
type Config struct {
	Registry RegistryConfig `mapstructure:"registry"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Database DatabaseConfig `mapstructure:"database"`
	Schema   SchemaConfig   `mapstructure:"schema"`
}

// RegistryConfig configures the remote registry endpoint.
type RegistryConfig struct {
	BaseURL           string  `mapstructure:"base_url"`            // e.g. "https://registry.example.org"
	Token             string  `mapstructure:"token"`               // Bearer token; prefer CURA_REGISTRY_TOKEN
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`     // Per-request timeout (default: 30)
	RatePerSecond     float64 `mapstructure:"rate_per_second"`     // Client-side request rate (default: 2.0)
	Burst             int     `mapstructure:"burst"`               // Rate limiter burst (default: 1)
	MinServerVersion  string  `mapstructure:"min_server_version"`  // Semver constraint (default: ">= 1.0.0")
	AllowPrivateHosts bool    `mapstructure:"allow_private_hosts"` // Permit private/loopback registry addresses
}

// BatchConfig configures run pacing and retry behavior.
type BatchConfig struct {
	Size                   int    `mapstructure:"size"`                      // Records between pacing pauses (default: 20)
	InterBatchDelaySeconds int    `mapstructure:"inter_batch_delay_seconds"` // Pause length, 0 disables (default: 2)
	DryRun                 bool   `mapstructure:"dry_run"`                   // Simulate runs by default
	MaxAttempts            int    `mapstructure:"max_attempts"`              // Retries of rate-limited writes (default: 3)
	Scope                  string `mapstructure:"scope"`                     // Optional resource-id prefix filter
}

// DatabaseConfig configures the run-history database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // SQLite file path (default: ~/.cura/cura.db)
}

// SchemaConfig points at optional field registry extensions.
type SchemaConfig struct {
	Extensions string `mapstructure:"extensions"` // YAML file adding or overriding field mappings
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// RegistryTimeout returns the per-request timeout as a duration.
func (c *Config) RegistryTimeout() time.Duration {
	return time.Duration(c.Registry.TimeoutSeconds) * time.Second
}

// InterBatchDelay returns the pacing pause as a duration.
func (c *Config) InterBatchDelay() time.Duration {
	return time.Duration(c.Batch.InterBatchDelaySeconds) * time.Second
}

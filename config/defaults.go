package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults establishes the baseline configuration on a viper instance.
// Every key a config file or environment variable may override is listed
// here so AllSettings always reflects the complete shape.
func SetDefaults(v *viper.Viper) {
	// Registry
	v.SetDefault("registry.base_url", "")
	v.SetDefault("registry.token", "")
	v.SetDefault("registry.timeout_seconds", 30)
	v.SetDefault("registry.rate_per_second", 2.0)
	v.SetDefault("registry.burst", 1)
	v.SetDefault("registry.min_server_version", ">= 1.0.0")
	v.SetDefault("registry.allow_private_hosts", false)

	// Batch
	v.SetDefault("batch.size", 20)
	v.SetDefault("batch.inter_batch_delay_seconds", 2)
	v.SetDefault("batch.dry_run", false)
	v.SetDefault("batch.max_attempts", 3)
	v.SetDefault("batch.scope", "")

	// Database
	v.SetDefault("database.path", defaultDatabasePath())

	// Schema
	v.SetDefault("schema.extensions", "")
}

// BindSensitiveEnvVars binds environment variables for values that should
// not live in config files. AutomaticEnv only sees keys that already exist,
// so the sensitive ones are bound explicitly.
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("registry.token", "CURA_REGISTRY_TOKEN")
	v.BindEnv("registry.base_url", "CURA_REGISTRY_BASE_URL")
	v.BindEnv("database.path", "CURA_DATABASE_PATH")
}

// defaultDatabasePath returns ~/.cura/cura.db, falling back to a relative
// path when the home directory cannot be determined.
func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cura.db"
	}
	return filepath.Join(home, ".cura", "cura.db")
}

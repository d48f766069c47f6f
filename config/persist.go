package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/meridios/cura/errors"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	// Check if file exists before backing up
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Delete oldest backup if exists
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Log deletion failures (but don't fail config save)
		fmt.Printf("⚠️  Failed to delete old backup %s: %v\n", back3, err)
	}

	// Rotate .back2 to .back3
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	// Rotate .back1 to .back2
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	// Copy current to .back1
	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// DefaultUserConfigPath returns the per-user config file in ~/.cura/config.toml
func DefaultUserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cura", "config.toml")
}

// WriteDefaultConfig writes a starter config file containing every default
// setting. An empty path targets the per-user config location. An existing
// file is rotated into the backup chain before being replaced.
func WriteDefaultConfig(path string) (string, error) {
	if path == "" {
		path = DefaultUserConfigPath()
		if path == "" {
			return "", errors.New("could not determine home directory")
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return "", errors.Wrap(err, "failed to create config directory")
	}

	if err := createBackup(path); err != nil {
		return "", errors.Wrap(err, "failed to create backup")
	}

	v := viper.New()
	SetDefaults(v)
	settings := v.AllSettings()

	// The token never goes in the template; it belongs in CURA_REGISTRY_TOKEN
	if registry, ok := settings["registry"].(map[string]interface{}); ok {
		delete(registry, "token")
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return "", errors.Wrap(err, "failed to write config")
	}

	return path, nil
}

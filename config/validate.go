package config

import (
	"net/url"

	"github.com/Masterminds/semver/v3"

	"github.com/meridios/cura/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Registry base URL is optional here (it may arrive via flag or env),
	// but when present it must be an absolute URL
	if c.Registry.BaseURL != "" {
		u, err := url.Parse(c.Registry.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.NewConfigError("registry.base_url must be an absolute URL, got %q", c.Registry.BaseURL)
		}
	}

	if c.Registry.TimeoutSeconds <= 0 {
		return errors.NewConfigError("registry.timeout_seconds must be > 0, got %d", c.Registry.TimeoutSeconds)
	}

	// Rate 0 would never admit a request, so it is rejected rather than
	// treated as "unlimited"
	if c.Registry.RatePerSecond <= 0 {
		return errors.NewConfigError("registry.rate_per_second must be > 0, got %g", c.Registry.RatePerSecond)
	}

	if c.Registry.Burst < 1 {
		return errors.NewConfigError("registry.burst must be >= 1, got %d", c.Registry.Burst)
	}

	// Empty constraint disables the server version gate
	if c.Registry.MinServerVersion != "" {
		if _, err := semver.NewConstraint(c.Registry.MinServerVersion); err != nil {
			return errors.NewConfigError("registry.min_server_version %q is not a valid version constraint: %v", c.Registry.MinServerVersion, err)
		}
	}

	if c.Batch.Size < 1 {
		return errors.NewConfigError("batch.size must be >= 1, got %d", c.Batch.Size)
	}

	// 0 = no pacing pause, negative = invalid
	if c.Batch.InterBatchDelaySeconds < 0 {
		return errors.NewConfigError("batch.inter_batch_delay_seconds must be >= 0, got %d", c.Batch.InterBatchDelaySeconds)
	}

	// 1 = single attempt, no retries
	if c.Batch.MaxAttempts < 1 {
		return errors.NewConfigError("batch.max_attempts must be >= 1, got %d", c.Batch.MaxAttempts)
	}

	if c.Database.Path == "" {
		return errors.NewConfigError("database.path cannot be empty")
	}

	return nil
}

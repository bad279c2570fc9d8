// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Library     LibraryConfig     `koanf:"library"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Persistence PersistenceConfig `koanf:"persistence"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// LibraryConfig holds catalog and registry settings.
//
// Environment Variables:
//   - SEED_SAMPLE_DATA: Load the built-in sample catalog at startup (default: false)
type LibraryConfig struct {
	SeedSampleData bool `koanf:"seed_sample_data"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_K: Result limit when a request omits k (default: 5)
//   - RECOMMEND_MAX_K: Hard cap on the result limit (default: 100)
type RecommendConfig struct {
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`
}

// PersistenceConfig holds state snapshot settings. When enabled the store is
// restored from the Badger database at startup and saved periodically and on
// shutdown.
//
// Environment Variables:
//   - PERSISTENCE_ENABLED: Enable state snapshots (default: false)
//   - PERSISTENCE_PATH: Badger database directory (default: /data/reelrank)
//   - PERSISTENCE_SNAPSHOT_INTERVAL: Background save interval (default: 5m)
type PersistenceConfig struct {
	Enabled          bool          `koanf:"enabled"`
	Path             string        `koanf:"path"`
	SnapshotInterval time.Duration `koanf:"snapshot_interval"`
}

// SecurityConfig holds rate limiting and CORS settings.
//
// Environment Variables:
//   - RATE_LIMIT_REQUESTS: Requests allowed per window (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely (default: false)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file and line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks configuration invariants after loading.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Recommend.DefaultK <= 0 {
		return fmt.Errorf("recommend.default_k must be positive, got %d", c.Recommend.DefaultK)
	}
	if c.Recommend.MaxK <= 0 {
		return fmt.Errorf("recommend.max_k must be positive, got %d", c.Recommend.MaxK)
	}
	if c.Recommend.DefaultK > c.Recommend.MaxK {
		return fmt.Errorf("recommend.default_k %d exceeds recommend.max_k %d",
			c.Recommend.DefaultK, c.Recommend.MaxK)
	}
	if c.Persistence.Enabled {
		if c.Persistence.Path == "" {
			return fmt.Errorf("persistence.path required when persistence is enabled")
		}
		if c.Persistence.SnapshotInterval <= 0 {
			return fmt.Errorf("persistence.snapshot_interval must be positive, got %v",
				c.Persistence.SnapshotInterval)
		}
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d",
				c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %v",
				c.Security.RateLimitWindow)
		}
	}
	return nil
}

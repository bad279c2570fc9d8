// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "fmt"

// Config holds recommendation engine configuration.
type Config struct {
	// DefaultK is the result limit applied when a request leaves K zero.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK caps the result limit regardless of what a request asks for.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultK: 5,
		MaxK:     100,
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.DefaultK <= 0 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK <= 0 {
		return fmt.Errorf("max_k must be positive, got %d", c.MaxK)
	}
	if c.DefaultK > c.MaxK {
		return fmt.Errorf("default_k %d exceeds max_k %d", c.DefaultK, c.MaxK)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// ChiMiddleware builds the CORS and rate limiting middleware from the
// security configuration.
type ChiMiddleware struct {
	security config.SecurityConfig
	logger   zerolog.Logger
}

// NewChiMiddleware creates the middleware set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewChiMiddleware(security config.SecurityConfig, logger zerolog.Logger) *ChiMiddleware {
	return &ChiMiddleware{
		security: security,
		logger:   logger.With().Str("component", "middleware").Logger(),
	}
}

// CORS returns the CORS middleware configured with the allowed origins.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	origins := m.security.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit returns an IP keyed rate limiter. When rate limiting is
// disabled it returns a pass-through middleware.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.security.RateLimitDisabled {
		m.logger.Warn().Msg("rate limiting disabled")
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limit := m.security.RateLimitReqs
	window := m.security.RateLimitWindow
	if limit <= 0 {
		limit = 100
	}
	if window <= 0 {
		window = time.Minute
	}

	m.logger.Info().
		Int("requests", limit).
		Dur("window", window).
		Msg("rate limiting enabled")

	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordRateLimitHit(r.URL.Path)
			rw := NewResponseWriter(w, r)
			rw.Error(http.StatusTooManyRequests, ErrCodeTooManyRequests,
				"Rate limit exceeded, retry later")
		}),
	)
}

// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/library"
	"github.com/tomtom215/reelrank/internal/middleware"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler *Handler
	chimw   *ChiMiddleware
	logger  zerolog.Logger
}

// NewRouter creates the router with all endpoint dependencies.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(store *library.Store, engine *recommend.Engine, security config.SecurityConfig, logger zerolog.Logger) *Router {
	return &Router{
		handler: NewHandler(store, engine, logger),
		chimw:   NewChiMiddleware(security, logger),
		logger:  logger.With().Str("component", "router").Logger(),
	}
}

// Setup builds the full routing tree:
//
//	GET  /metrics                                     Prometheus exposition
//	GET  /api/v1/health/live                          liveness probe
//	GET  /api/v1/health/ready                         readiness probe
//	POST /api/v1/catalog                              add a movie
//	GET  /api/v1/catalog                              list the catalog
//	GET  /api/v1/catalog/{title}/rating               average rating
//	GET  /api/v1/search?category=                     search by category
//	POST /api/v1/users                                register a user
//	POST /api/v1/users/{username}/ratings             record a rating
//	PUT  /api/v1/users/{username}/preferences         record a preference
//	GET  /api/v1/users/{username}/recommendations     recommend movies
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.chimw.CORS())

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Health endpoints are not rate limited so probes never starve.
		r.Route("/health", func(r chi.Router) {
			r.Get("/live", rt.handler.HealthLive)
			r.Get("/ready", rt.handler.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(rt.chimw.RateLimit())
			r.Use(middleware.PrometheusMetrics)

			r.Route("/catalog", func(r chi.Router) {
				r.Post("/", rt.handler.AddMovie)
				r.Get("/", rt.handler.ListCatalog)
				r.Get("/{title}/rating", rt.handler.AverageRating)
			})

			r.Get("/search", rt.handler.SearchByCategory)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", rt.handler.RegisterUser)
				r.Post("/{username}/ratings", rt.handler.Rate)
				r.Put("/{username}/preferences", rt.handler.SetPreference)
				r.Get("/{username}/recommendations", rt.handler.Recommendations)
			})
		})
	})

	rt.logger.Info().Msg("routes registered")
	return r
}

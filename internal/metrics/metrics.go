// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Library Metrics
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_catalog_movies",
			Help: "Current number of movies in the catalog",
		},
	)

	RegisteredUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "library_registered_users",
			Help: "Current number of registered users",
		},
	)

	RatingsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "library_ratings_recorded_total",
			Help: "Total number of rating submissions accepted",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"status"}, // "success", "unknown_user", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation scoring duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	RecommendationResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of movies returned per recommendation request",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	// Persistence Metrics
	SnapshotSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persist_snapshot_saves_total",
			Help: "Total number of state snapshot save attempts",
		},
		[]string{"result"}, // "success", "error"
	)

	SnapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "persist_snapshot_duration_seconds",
			Help:    "Duration of state snapshot saves in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	SnapshotLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "persist_snapshot_last_success_timestamp",
			Help: "Unix timestamp of last successful state snapshot",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a rate limit rejection for an endpoint
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// SetCatalogSize updates the catalog size gauge
func SetCatalogSize(n int) {
	CatalogSize.Set(float64(n))
}

// SetRegisteredUsers updates the registered users gauge
func SetRegisteredUsers(n int) {
	RegisteredUsers.Set(float64(n))
}

// RecordRating records an accepted rating submission
func RecordRating() {
	RatingsRecorded.Inc()
}

// RecordRecommendation records a recommendation request outcome
func RecordRecommendation(status string, resultSize int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(status).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if status == "success" {
		RecommendationResultSize.Observe(float64(resultSize))
	}
}

// RecordSnapshotSave records a state snapshot save attempt
func RecordSnapshotSave(duration time.Duration, err error) {
	SnapshotDuration.Observe(duration.Seconds())
	if err != nil {
		SnapshotSaves.WithLabelValues("error").Inc()
		return
	}
	SnapshotSaves.WithLabelValues("success").Inc()
	SnapshotLastSuccess.Set(float64(time.Now().Unix()))
}

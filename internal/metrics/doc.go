// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered at package load via promauto and exposed at the
/metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Library Metrics:
  - library_catalog_movies: Movies in the catalog (gauge)
  - library_registered_users: Registered users (gauge)
  - library_ratings_recorded_total: Accepted rating submissions (counter)

Recommendation Metrics:
  - recommendations_total: Recommendation requests (counter)
    Labels: status (success, unknown_user, error)
  - recommendation_duration_seconds: Scoring latency (histogram)
  - recommendation_result_size: Movies returned per request (histogram)

Persistence Metrics:
  - persist_snapshot_saves_total: Snapshot save attempts (counter)
    Labels: result (success, error)
  - persist_snapshot_duration_seconds: Snapshot save latency (histogram)
  - persist_snapshot_last_success_timestamp: Last successful save (gauge)

# Usage

Helpers wrap the raw collectors so call sites stay one line:

	metrics.RecordAPIRequest("GET", "/api/v1/catalog", "200", elapsed)
	metrics.SetCatalogSize(store.MovieCount())
*/
package metrics

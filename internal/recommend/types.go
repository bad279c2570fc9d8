// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "time"

// Movie is a catalog entry as seen by the scoring engine.
type Movie struct {
	// Title is the unique movie identifier.
	Title string `json:"title"`

	// Categories is the movie's tag set.
	Categories []string `json:"categories"`

	// Ratings maps rater username to the rating that rater gave this movie.
	Ratings map[string]float64 `json:"ratings"`
}

// Snapshot is a point-in-time copy of catalog and registry state.
type Snapshot struct {
	// Movies holds the catalog in insertion order.
	Movies []Movie

	// Histories maps every registered username to that user's personal
	// title -> rating history. Membership in this map defines "registered".
	Histories map[string]map[string]float64
}

// DataProvider supplies catalog and registry state for scoring.
// Implemented by the library store; the engine never reads live state.
type DataProvider interface {
	Snapshot() Snapshot
}

// Request represents a recommendation request.
type Request struct {
	// Username is the registered user to recommend for.
	Username string `json:"username"`

	// K is the number of recommendations to return.
	// Defaults to Config.DefaultK if zero; capped at Config.MaxK.
	K int `json:"k,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// ScoredMovie is a movie with its computed relevance score.
type ScoredMovie struct {
	// Movie is the scored catalog entry.
	Movie Movie `json:"movie"`

	// Score is the co-rating score (sum of rating products over overlap).
	Score float64 `json:"score"`

	// Overlap is the number of raters contributing a defined term.
	Overlap int `json:"overlap"`
}

// Response represents a recommendation response.
type Response struct {
	// Items is the ordered list of recommended movies, highest score first.
	Items []ScoredMovie `json:"items"`

	// TotalCandidates is the number of catalog movies considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// Username is the user the recommendations are for.
	Username string `json:"username"`

	// K is the effective result limit after defaults and capping.
	K int `json:"k"`

	// LatencyMS is the scoring latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

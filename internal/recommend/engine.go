// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrUnknownUser indicates a recommendation request for an unregistered
// username.
var ErrUnknownUser = errors.New("unknown user")

// Engine computes co-rating recommendation scores over a catalog snapshot.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	dataProvider DataProvider

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// ErrorCount is the total number of failed requests.
	ErrorCount int64 `json:"error_count"`
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetDataProvider sets the snapshot source for scoring.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// Recommend generates up to K recommendations for a registered user.
// An empty catalog, or a catalog where no movie attains a defined score,
// yields an empty item list and a nil error; only an unregistered
// username is an error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("username", req.Username).
		Int("k", req.K).
		Logger()
	logger.Debug().Msg("processing recommendation request")

	if e.dataProvider == nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("data provider not set")
	}

	snap := e.dataProvider.Snapshot()
	if _, registered := snap.Histories[req.Username]; !registered {
		e.errorCount.Add(1)
		return nil, ErrUnknownUser
	}

	scored := scoreMovies(snap)

	// Stable sort: equal scores keep catalog insertion order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > req.K {
		scored = scored[:req.K]
	}

	resp := &Response{
		Items:           scored,
		TotalCandidates: len(snap.Movies),
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			Username:  req.Username,
			K:         req.K,
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: time.Now(),
		},
	}

	logger.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	if req.K <= 0 {
		req.K = e.config.DefaultK
	}
	if req.K > e.config.MaxK {
		req.K = e.config.MaxK
	}
	return req
}

// scoreMovies computes per-movie co-rating scores over the snapshot, in
// catalog order. Movies with zero overlap are excluded.
//
// Each rater's contribution is their rating of the movie multiplied by the
// value found by looking the movie's title up in that same rater's
// personal history. Raters missing from the registry, or whose history
// lacks the title, contribute nothing and do not count toward overlap.
func scoreMovies(snap Snapshot) []ScoredMovie {
	scored := make([]ScoredMovie, 0, len(snap.Movies))

	for _, m := range snap.Movies {
		var sum float64
		overlap := 0

		for rater, raterRating := range m.Ratings {
			history, registered := snap.Histories[rater]
			if !registered {
				// Rater map entries should always have a registry twin;
				// tolerate strays rather than failing the whole pass.
				continue
			}
			recorded, rated := history[m.Title]
			if !rated {
				continue
			}
			sum += raterRating * recorded
			overlap++
		}

		if overlap > 0 {
			scored = append(scored, ScoredMovie{
				Movie:   m,
				Score:   sum / float64(overlap),
				Overlap: overlap,
			})
		}
	}

	return scored
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	return Metrics{
		RequestCount: e.requestCount.Load(),
		ErrorCount:   e.errorCount.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

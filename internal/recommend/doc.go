// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package recommend implements the co-rating recommendation engine.
//
// # Algorithm
//
// For a registered user the engine walks the catalog in insertion order
// and scores each movie from the ratings recorded on it. For every rater
// on a movie, the rater's rating of the movie is multiplied by the value
// found by looking the movie's title up again in that same rater's
// personal history; when the lookup succeeds the product is added to the
// movie's sum and the overlap count is incremented. The movie's score is
// sum/overlap; movies with zero overlap carry no score and are excluded.
// Scored movies are sorted by score descending with a stable sort, so
// equal scores keep catalog insertion order, and the list is truncated
// to K.
//
// Because a rater's map is consulted for both factors, each term reduces
// to the square of that rater's own rating and the querying user's
// history never enters the per-movie score. That is the contracted
// behavior, reproduced deliberately; replacing it with a conventional
// cross-user similarity would change every ranking this service has ever
// produced.
//
// # Design
//
// The package has no dependencies on other internal packages. The
// DataProvider interface supplies a point-in-time Snapshot of catalog and
// registry state, which the library store implements, so scoring never
// observes a half-applied rating.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetDataProvider(store)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Username: "alice",
//	    K:        5,
//	})
package recommend

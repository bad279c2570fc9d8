// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package library holds the in-memory movie catalog and user registry.
//
// # Data Model
//
// Two containers back the whole service:
//
//   - Catalog: an insertion-ordered sequence of Movies. Insertion order is
//     load-bearing: it is the tie-break order for equal recommendation
//     scores and the result order for category search.
//   - Registry: a map of registered Users keyed by username.
//
// A Movie records who rated it (rater username -> value); a User records
// what they rated (movie title -> value). Rating a movie updates both maps
// so either side can be walked without consulting the other. Rating a title
// that is not in the catalog is still recorded on the user's own history;
// the store deliberately does not validate titles on rate.
//
// Values are accepted as-is. The nominal range is 0.0-5.0 but nothing
// clamps or rejects out-of-range ratings; they propagate into scores
// unchanged.
//
// # Concurrency
//
// All operations take a single coarse RWMutex on the Store. Rating
// mutation and recommendation scoring interleave over the same maps, so
// readers obtain a point-in-time copy via Snapshot rather than holding
// references into live state.
package library

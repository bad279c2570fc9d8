// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package persist provides durable state snapshots backed by BadgerDB.
//
// The full catalog and registry are written on every save: movies under
// movie:<index> keys (index preserves catalog insertion order) and users
// under user:<username> keys. Loads read everything back in one view
// transaction. The store is intended for startup restore, periodic
// background saves and a final save on shutdown.
package persist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/library"
	"github.com/tomtom215/reelrank/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	movieKeyPrefix = "movie:"
	userKeyPrefix  = "user:"
)

// movieIndexWidth zero-pads movie keys so lexicographic iteration order
// matches catalog insertion order.
const movieIndexWidth = 8

// Store persists library state to a BadgerDB database.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) the Badger database at path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(path string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %s: %w", path, err)
	}

	return &Store{
		db:     db,
		logger: logger.With().Str("component", "persist").Logger(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger db: %w", err)
	}
	return nil
}

// Save writes the full library state, replacing any previous snapshot.
// Stale keys from a larger earlier catalog are dropped first so the
// snapshot never resurrects deleted state.
func (s *Store) Save(movies []library.Movie, users []library.User) error {
	start := time.Now()

	err := s.db.DropPrefix([]byte(movieKeyPrefix), []byte(userKeyPrefix))
	if err != nil {
		metrics.RecordSnapshotSave(time.Since(start), err)
		return fmt.Errorf("drop stale snapshot keys: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for i := range movies {
			data, err := json.Marshal(&movies[i])
			if err != nil {
				return fmt.Errorf("marshal movie %s: %w", movies[i].Title, err)
			}
			key := []byte(fmt.Sprintf("%s%0*d", movieKeyPrefix, movieIndexWidth, i))
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set movie %s: %w", movies[i].Title, err)
			}
		}

		for i := range users {
			data, err := json.Marshal(&users[i])
			if err != nil {
				return fmt.Errorf("marshal user %s: %w", users[i].Username, err)
			}
			key := []byte(userKeyPrefix + users[i].Username)
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set user %s: %w", users[i].Username, err)
			}
		}

		return nil
	})

	metrics.RecordSnapshotSave(time.Since(start), err)
	if err != nil {
		return err
	}

	s.logger.Debug().
		Int("movies", len(movies)).
		Int("users", len(users)).
		Dur("elapsed", time.Since(start)).
		Msg("state snapshot saved")

	return nil
}

// Load reads the most recent snapshot. An empty database yields empty
// slices and a nil error.
func (s *Store) Load() ([]library.Movie, []library.User, error) {
	type indexedMovie struct {
		index int
		movie library.Movie
	}

	var indexed []indexedMovie
	var users []library.User

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(movieKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key())

			idx, err := strconv.Atoi(strings.TrimPrefix(key, movieKeyPrefix))
			if err != nil {
				return fmt.Errorf("malformed movie key %s: %w", key, err)
			}

			var m library.Movie
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return fmt.Errorf("unmarshal movie key %s: %w", key, err)
			}
			indexed = append(indexed, indexedMovie{index: idx, movie: m})
		}

		prefix = []byte(userKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var u library.User
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &u)
			}); err != nil {
				return fmt.Errorf("unmarshal user key %s: %w", string(item.Key()), err)
			}
			users = append(users, u)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(indexed, func(i, j int) bool {
		return indexed[i].index < indexed[j].index
	})
	movies := make([]library.Movie, 0, len(indexed))
	for _, im := range indexed {
		movies = append(movies, im.movie)
	}

	s.logger.Info().
		Int("movies", len(movies)).
		Int("users", len(users)).
		Msg("state snapshot loaded")

	return movies, users, nil
}

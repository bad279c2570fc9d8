// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package persist

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/library"
)

// Exporter supplies the state to persist. Implemented by the library store.
type Exporter interface {
	Export() (movies []library.Movie, users []library.User)
}

// Snapshotter saves exported state to a Store on a fixed interval.
type Snapshotter struct {
	store    *Store
	exporter Exporter
	interval time.Duration
	logger   zerolog.Logger
}

// NewSnapshotter creates a periodic snapshotter.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotter(store *Store, exporter Exporter, interval time.Duration, logger zerolog.Logger) *Snapshotter {
	return &Snapshotter{
		store:    store,
		exporter: exporter,
		interval: interval,
		logger:   logger.With().Str("component", "snapshotter").Logger(),
	}
}

// Run saves on every interval tick until ctx is canceled, then performs a
// final save so shutdown never loses the tail of the write stream. Blocks;
// call from its own goroutine.
func (s *Snapshotter) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("periodic snapshots started")

	for {
		select {
		case <-ticker.C:
			s.save()
		case <-ctx.Done():
			s.save()
			s.logger.Info().Msg("periodic snapshots stopped")
			return
		}
	}
}

func (s *Snapshotter) save() {
	movies, users := s.exporter.Export()
	if err := s.store.Save(movies, users); err != nil {
		s.logger.Error().Err(err).Msg("state snapshot failed")
	}
}

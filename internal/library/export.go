// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package library

import "github.com/tomtom215/reelrank/internal/metrics"

// Export returns deep copies of the full catalog (insertion order) and
// registry for persistence. The persist package serializes these without
// touching live store state.
func (s *Store) Export() (movies []Movie, users []User) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movies = make([]Movie, 0, len(s.movies))
	for _, m := range s.movies {
		movies = append(movies, copyMovie(m))
	}

	users = make([]User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, copyUser(u))
	}

	return movies, users
}

// Import replaces store state with a previously exported snapshot. Movies
// must be supplied in catalog insertion order; duplicates beyond the first
// occurrence of a title are dropped. Intended for startup restore only.
func (s *Store) Import(movies []Movie, users []User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.movies = make([]*Movie, 0, len(movies))
	s.byTitle = make(map[string]*Movie, len(movies))
	for i := range movies {
		m := copyMovie(&movies[i])
		if _, exists := s.byTitle[m.Title]; exists {
			continue
		}
		if m.Ratings == nil {
			m.Ratings = make(map[string]float64)
		}
		s.movies = append(s.movies, &m)
		s.byTitle[m.Title] = &m
	}

	s.users = make(map[string]*User, len(users))
	for i := range users {
		u := copyUser(&users[i])
		if u.Ratings == nil {
			u.Ratings = make(map[string]float64)
		}
		if u.Preferences == nil {
			u.Preferences = make(map[string]float64)
		}
		s.users[u.Username] = &u
	}

	metrics.SetCatalogSize(len(s.movies))
	metrics.SetRegisteredUsers(len(s.users))
	s.logger.Info().
		Int("movies", len(s.movies)).
		Int("users", len(s.users)).
		Msg("store state imported")
}

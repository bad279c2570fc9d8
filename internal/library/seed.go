// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package library

// sampleCatalog is the bootstrap catalog used when seeding is enabled.
// Handy for demos and CI smoke tests against a non-empty service.
var sampleCatalog = []struct {
	title      string
	categories []string
}{
	{"Movie A", []string{"Action", "Adventure"}},
	{"Movie B", []string{"Comedy", "Romance"}},
	{"Movie C", []string{"Action", "Romance"}},
	{"Movie D", []string{"Horror", "Thriller"}},
	{"Movie E", []string{"Comedy", "Adventure"}},
}

// SeedSampleCatalog loads the built-in sample catalog. Titles already in
// the catalog are left untouched, so seeding a restored store is safe.
func (s *Store) SeedSampleCatalog() {
	seeded := 0
	for _, e := range sampleCatalog {
		if _, err := s.AddMovie(e.title, e.categories); err == nil {
			seeded++
		}
	}
	s.logger.Info().Int("movies", seeded).Msg("sample catalog seeded")
}

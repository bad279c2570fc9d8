// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package library

import "testing"

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	src := newTestStore()
	_, _ = src.AddMovie("Movie A", []string{"Action"})
	_, _ = src.AddMovie("Movie B", []string{"Comedy"})
	src.RegisterUser("alice")
	_ = src.Rate("alice", "Movie A", 4.0)
	_ = src.SetPreference("alice", "Action", 0.9)

	movies, users := src.Export()

	dst := newTestStore()
	dst.Import(movies, users)

	got := dst.Movies()
	if len(got) != 2 || got[0].Title != "Movie A" || got[1].Title != "Movie B" {
		t.Fatalf("expected catalog order preserved, got %+v", got)
	}
	if got[0].Ratings["alice"] != 4.0 {
		t.Fatalf("expected movie rating restored, got %v", got[0].Ratings["alice"])
	}

	u, err := dst.GetUser("alice")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if u.Ratings["Movie A"] != 4.0 {
		t.Fatalf("expected history restored, got %v", u.Ratings["Movie A"])
	}
	if u.Preferences["Action"] != 0.9 {
		t.Fatalf("expected preferences restored, got %v", u.Preferences["Action"])
	}
}

func TestImportDropsDuplicateTitles(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	s.Import([]Movie{
		{Title: "Movie A", Ratings: map[string]float64{"alice": 5.0}},
		{Title: "Movie A", Ratings: map[string]float64{"bob": 1.0}},
	}, nil)

	got := s.Movies()
	if len(got) != 1 {
		t.Fatalf("expected 1 movie after duplicate drop, got %d", len(got))
	}
	if got[0].Ratings["alice"] != 5.0 {
		t.Fatal("expected first occurrence kept")
	}
}

func TestImportNilMapsGuarded(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	s.Import(
		[]Movie{{Title: "Bare"}},
		[]User{{Username: "bare"}},
	)

	// Rating through the restored state must not panic on nil maps.
	if err := s.Rate("bare", "Bare", 2.0); err != nil {
		t.Fatalf("Rate after import: %v", err)
	}

	avg, err := s.AverageRating("Bare")
	if err != nil {
		t.Fatalf("AverageRating: %v", err)
	}
	if avg != 2.0 {
		t.Fatalf("expected 2.0, got %v", avg)
	}
}

func TestImportReplacesExistingState(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	_, _ = s.AddMovie("Old Movie", nil)
	s.RegisterUser("old-user")

	s.Import([]Movie{{Title: "New Movie"}}, []User{{Username: "new-user"}})

	movies, users := s.Counts()
	if movies != 1 || users != 1 {
		t.Fatalf("expected replacement, got %d movies and %d users", movies, users)
	}
	if s.UserExists("old-user") {
		t.Fatal("expected old user gone after import")
	}
}

func TestSeedSampleCatalog(t *testing.T) {
	t.Parallel()

	s := newTestStore()
	s.SeedSampleCatalog()

	movies, _ := s.Counts()
	if movies != 5 {
		t.Fatalf("expected 5 seeded movies, got %d", movies)
	}

	// Seeding again must not duplicate.
	s.SeedSampleCatalog()
	movies, _ = s.Counts()
	if movies != 5 {
		t.Fatalf("expected seeding to be idempotent, got %d movies", movies)
	}

	if got := s.SearchByCategory("Action"); len(got) != 2 {
		t.Fatalf("expected 2 Action movies in sample catalog, got %d", len(got))
	}
}

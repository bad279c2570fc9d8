// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	snap Snapshot
}

func (m *mockDataProvider) Snapshot() Snapshot {
	return m.snap
}

// testLogger returns a zerolog logger for testing.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// snapshotBuilder assembles snapshots for tests while keeping the movie
// and history maps consistent the way the library store does.
type snapshotBuilder struct {
	snap Snapshot
}

func newSnapshotBuilder() *snapshotBuilder {
	return &snapshotBuilder{
		snap: Snapshot{
			Histories: make(map[string]map[string]float64),
		},
	}
}

func (b *snapshotBuilder) addMovie(title string, categories ...string) *snapshotBuilder {
	b.snap.Movies = append(b.snap.Movies, Movie{
		Title:      title,
		Categories: categories,
		Ratings:    make(map[string]float64),
	})
	return b
}

func (b *snapshotBuilder) registerUser(username string) *snapshotBuilder {
	if b.snap.Histories[username] == nil {
		b.snap.Histories[username] = make(map[string]float64)
	}
	return b
}

func (b *snapshotBuilder) rate(username, title string, rating float64) *snapshotBuilder {
	b.registerUser(username)
	b.snap.Histories[username][title] = rating
	for i := range b.snap.Movies {
		if b.snap.Movies[i].Title == title {
			b.snap.Movies[i].Ratings[username] = rating
		}
	}
	return b
}

func (b *snapshotBuilder) provider() *mockDataProvider {
	return &mockDataProvider{snap: b.snap}
}

// --- Test: NewEngine ---

func TestNewEngine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "nil config uses defaults",
			cfg:     nil,
			wantErr: false,
		},
		{
			name:    "valid default config",
			cfg:     DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "non-positive default_k rejected",
			cfg:     &Config{DefaultK: 0, MaxK: 10},
			wantErr: true,
		},
		{
			name:    "non-positive max_k rejected",
			cfg:     &Config{DefaultK: 5, MaxK: 0},
			wantErr: true,
		},
		{
			name:    "default_k above max_k rejected",
			cfg:     &Config{DefaultK: 50, MaxK: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine, err := NewEngine(tt.cfg, testLogger())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if engine == nil {
				t.Fatal("expected engine, got nil")
			}
		})
	}
}

func newTestEngine(t *testing.T, dp DataProvider) *Engine {
	t.Helper()

	engine, err := NewEngine(DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	engine.SetDataProvider(dp)
	return engine
}

// --- Test: Recommend error cases ---

func TestRecommendNoDataProvider(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	if _, err := engine.Recommend(context.Background(), Request{Username: "alice"}); err == nil {
		t.Fatal("expected error without data provider")
	}
}

func TestRecommendUnknownUser(t *testing.T) {
	t.Parallel()

	b := newSnapshotBuilder().
		addMovie("Movie A", "Action").
		registerUser("alice")
	engine := newTestEngine(t, b.provider())

	_, err := engine.Recommend(context.Background(), Request{Username: "nobody"})
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	t.Parallel()

	b := newSnapshotBuilder().registerUser("alice")
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty items, got %d", len(resp.Items))
	}
	if resp.TotalCandidates != 0 {
		t.Fatalf("expected 0 candidates, got %d", resp.TotalCandidates)
	}
}

// --- Test: scoring semantics ---

func TestRecommendSumOfSquaresScore(t *testing.T) {
	t.Parallel()

	// Item A rated 5.0 by one rater: score = (5.0 * 5.0) / 1 = 25.0.
	// Item B has no raters and must be excluded.
	b := newSnapshotBuilder().
		addMovie("Movie A", "action").
		addMovie("Movie B", "comedy").
		registerUser("u").
		rate("v", "Movie A", 5.0)
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	got := resp.Items[0]
	if got.Movie.Title != "Movie A" {
		t.Fatalf("expected Movie A, got %s", got.Movie.Title)
	}
	if got.Score != 25.0 {
		t.Fatalf("expected score 25.0, got %v", got.Score)
	}
	if got.Overlap != 1 {
		t.Fatalf("expected overlap 1, got %d", got.Overlap)
	}
}

func TestRecommendScoreIsRaterSelfProduct(t *testing.T) {
	t.Parallel()

	// The querying user's own ratings must not influence another movie's
	// score: each term is the rater's rating squared, averaged over raters.
	b := newSnapshotBuilder().
		addMovie("Movie A").
		addMovie("Movie B").
		rate("alice", "Movie A", 1.0).
		rate("bob", "Movie B", 2.0).
		rate("carol", "Movie B", 4.0)
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "alice"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}

	// Movie B: (2*2 + 4*4) / 2 = 10; Movie A: (1*1) / 1 = 1.
	if resp.Items[0].Movie.Title != "Movie B" || resp.Items[0].Score != 10.0 {
		t.Fatalf("expected Movie B at 10.0, got %s at %v",
			resp.Items[0].Movie.Title, resp.Items[0].Score)
	}
	if resp.Items[1].Movie.Title != "Movie A" || resp.Items[1].Score != 1.0 {
		t.Fatalf("expected Movie A at 1.0, got %s at %v",
			resp.Items[1].Movie.Title, resp.Items[1].Score)
	}
}

func TestRecommendStrayRaterSkipped(t *testing.T) {
	t.Parallel()

	// A rater recorded on the movie but missing from the registry must be
	// skipped without failing the computation or counting toward overlap.
	b := newSnapshotBuilder().
		addMovie("Movie A").
		rate("bob", "Movie A", 3.0)
	b.snap.Movies[0].Ratings["ghost"] = 4.0
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(resp.Items))
	}
	if resp.Items[0].Score != 9.0 || resp.Items[0].Overlap != 1 {
		t.Fatalf("expected score 9.0 overlap 1, got %v overlap %d",
			resp.Items[0].Score, resp.Items[0].Overlap)
	}
}

// --- Test: ordering and truncation ---

func TestRecommendTieBreakPreservesCatalogOrder(t *testing.T) {
	t.Parallel()

	// Identical scores must come back in catalog insertion order.
	b := newSnapshotBuilder().
		addMovie("First").
		addMovie("Second").
		addMovie("Third").
		rate("u1", "First", 3.0).
		rate("u2", "Second", 3.0).
		rate("u3", "Third", 3.0)
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"First", "Second", "Third"}
	if len(resp.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(resp.Items))
	}
	for i, title := range want {
		if resp.Items[i].Movie.Title != title {
			t.Fatalf("position %d: expected %s, got %s", i, title, resp.Items[i].Movie.Title)
		}
	}
}

func TestRecommendTruncatesToK(t *testing.T) {
	t.Parallel()

	b := newSnapshotBuilder()
	titles := []string{"M1", "M2", "M3", "M4", "M5", "M6", "M7"}
	for _, title := range titles {
		b.addMovie(title)
		b.rate("u", title, 4.0)
	}
	engine := newTestEngine(t, b.provider())

	tests := []struct {
		name string
		k    int
		want int
	}{
		{name: "default k caps at 5", k: 0, want: 5},
		{name: "explicit k below catalog", k: 2, want: 2},
		{name: "k above scored count returns all", k: 50, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, err := engine.Recommend(context.Background(), Request{Username: "u", K: tt.k})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(resp.Items) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(resp.Items))
			}
		})
	}
}

func TestRecommendKCappedAtMaxK(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(&Config{DefaultK: 2, MaxK: 3}, testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	b := newSnapshotBuilder()
	for _, title := range []string{"M1", "M2", "M3", "M4", "M5"} {
		b.addMovie(title)
		b.rate("u", title, 1.0)
	}
	engine.SetDataProvider(b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "u", K: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 items (MaxK), got %d", len(resp.Items))
	}
	if resp.Metadata.K != 3 {
		t.Fatalf("expected effective K 3 in metadata, got %d", resp.Metadata.K)
	}
}

func TestRecommendZeroOverlapExcluded(t *testing.T) {
	t.Parallel()

	// A movie whose only rater never recorded the title in their own
	// history has zero overlap and must not appear in results.
	b := newSnapshotBuilder().
		addMovie("Orphan").
		registerUser("bob")
	b.snap.Movies[0].Ratings["bob"] = 5.0 // movie-side entry with no history twin
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "bob"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected zero-overlap movie excluded, got %d items", len(resp.Items))
	}
	if resp.TotalCandidates != 1 {
		t.Fatalf("expected 1 candidate, got %d", resp.TotalCandidates)
	}
}

// --- Test: out-of-range ratings propagate ---

func TestRecommendOutOfRangeRatingsPropagate(t *testing.T) {
	t.Parallel()

	b := newSnapshotBuilder().
		addMovie("Loud").
		rate("u", "Loud", 10.0)
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Score != 100.0 {
		t.Fatalf("expected unclamped score 100.0, got %+v", resp.Items)
	}
}

// --- Test: metadata and metrics ---

func TestRecommendMetadata(t *testing.T) {
	t.Parallel()

	b := newSnapshotBuilder().
		addMovie("Movie A").
		rate("u", "Movie A", 2.0)
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{
		Username:  "u",
		RequestID: "req-42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Metadata.RequestID != "req-42" {
		t.Fatalf("expected request id preserved, got %q", resp.Metadata.RequestID)
	}
	if resp.Metadata.Username != "u" {
		t.Fatalf("expected username in metadata, got %q", resp.Metadata.Username)
	}
	if resp.Metadata.Timestamp.IsZero() {
		t.Fatal("expected non-zero timestamp")
	}
}

func TestRecommendGeneratesRequestID(t *testing.T) {
	t.Parallel()

	b := newSnapshotBuilder().registerUser("u")
	engine := newTestEngine(t, b.provider())

	resp, err := engine.Recommend(context.Background(), Request{Username: "u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Metadata.RequestID == "" {
		t.Fatal("expected generated request id")
	}
}

func TestEngineMetrics(t *testing.T) {
	t.Parallel()

	b := newSnapshotBuilder().registerUser("u")
	engine := newTestEngine(t, b.provider())

	if _, err := engine.Recommend(context.Background(), Request{Username: "u"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.Recommend(context.Background(), Request{Username: "nobody"}); err == nil {
		t.Fatal("expected error for unknown user")
	}

	m := engine.GetMetrics()
	if m.RequestCount != 2 {
		t.Fatalf("expected 2 requests, got %d", m.RequestCount)
	}
	if m.ErrorCount != 1 {
		t.Fatalf("expected 1 error, got %d", m.ErrorCount)
	}
}

func TestGetConfigReturnsCopy(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(DefaultConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	cfg := engine.GetConfig()
	cfg.DefaultK = 99

	if engine.GetConfig().DefaultK == 99 {
		t.Fatal("GetConfig must return a copy")
	}
}

// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package library

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Sentinel errors returned by store operations.
var (
	// ErrDuplicateTitle indicates an AddMovie call for a title already in the catalog.
	ErrDuplicateTitle = errors.New("movie title already in catalog")

	// ErrUnknownUser indicates an operation for a username that is not registered.
	ErrUnknownUser = errors.New("unknown user")

	// ErrUnknownTitle indicates a lookup for a title that is not in the catalog.
	ErrUnknownTitle = errors.New("unknown movie title")

	// ErrNoRatings indicates an average requested for a movie nobody has rated.
	ErrNoRatings = errors.New("movie has no ratings")
)

// Movie is a catalog entry. Ratings maps rater username to the value that
// rater gave this movie.
type Movie struct {
	Title      string             `json:"title"`
	Categories []string           `json:"categories"`
	Ratings    map[string]float64 `json:"ratings"`
}

// User is a registered identity. Ratings maps movie title to the value the
// user personally gave. Preferences maps category to a preference weight;
// the field is carried for forward-compatibility and has no effect on
// scoring.
type User struct {
	Username    string             `json:"username"`
	Ratings     map[string]float64 `json:"ratings"`
	Preferences map[string]float64 `json:"preferences"`
}

// Store owns the catalog and the registry behind one coarse lock.
type Store struct {
	mu      sync.RWMutex
	movies  []*Movie          // catalog, insertion order
	byTitle map[string]*Movie // index into movies
	users   map[string]*User

	logger zerolog.Logger
}

// NewStore creates an empty catalog and registry.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		byTitle: make(map[string]*Movie),
		users:   make(map[string]*User),
		logger:  logger.With().Str("component", "library").Logger(),
	}
}

// AddMovie appends a movie to the catalog. The title must be unique;
// duplicates are rejected with ErrDuplicateTitle rather than shadowing the
// earlier entry.
func (s *Store) AddMovie(title string, categories []string) (Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTitle[title]; exists {
		return Movie{}, ErrDuplicateTitle
	}

	m := &Movie{
		Title:      title,
		Categories: append([]string(nil), categories...),
		Ratings:    make(map[string]float64),
	}
	s.movies = append(s.movies, m)
	s.byTitle[title] = m

	metrics.SetCatalogSize(len(s.movies))
	s.logger.Debug().
		Str("title", title).
		Strs("categories", m.Categories).
		Msg("movie added to catalog")

	return copyMovie(m), nil
}

// RegisterUser adds a username to the registry. Registration is idempotent:
// re-registering an existing username returns the existing user untouched,
// preserving any rating history.
func (s *Store) RegisterUser(username string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, exists := s.users[username]; exists {
		return copyUser(u)
	}

	u := &User{
		Username:    username,
		Ratings:     make(map[string]float64),
		Preferences: make(map[string]float64),
	}
	s.users[username] = u

	metrics.SetRegisteredUsers(len(s.users))
	s.logger.Debug().Str("username", username).Msg("user registered")

	return copyUser(u)
}

// Rate records a rating by a registered user. The rating always lands in
// the user's own history; when the title is in the catalog the movie's
// rater map is updated as well, keeping the two maps consistent. Titles
// not in the catalog are accepted without error. Values are not clamped.
func (s *Store) Rate(username, title string, rating float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return ErrUnknownUser
	}

	u.Ratings[title] = rating
	if m, inCatalog := s.byTitle[title]; inCatalog {
		m.Ratings[username] = rating
	}

	metrics.RecordRating()
	s.logger.Debug().
		Str("username", username).
		Str("title", title).
		Float64("rating", rating).
		Msg("rating recorded")

	return nil
}

// SetPreference records a category preference weight for a registered
// user. Preferences do not influence recommendation scores.
func (s *Store) SetPreference(username, category string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[username]
	if !exists {
		return ErrUnknownUser
	}

	u.Preferences[category] = weight
	return nil
}

// AverageRating returns the arithmetic mean of all ratings stored for the
// titled movie. A movie nobody has rated yields ErrNoRatings.
func (s *Store) AverageRating(title string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, exists := s.byTitle[title]
	if !exists {
		return 0, ErrUnknownTitle
	}
	if len(m.Ratings) == 0 {
		return 0, ErrNoRatings
	}

	var sum float64
	for _, r := range m.Ratings {
		sum += r
	}
	return sum / float64(len(m.Ratings)), nil
}

// SearchByCategory returns every movie whose category set contains the
// given category, exact match, in catalog insertion order.
func (s *Store) SearchByCategory(category string) []Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Movie, 0)
	for _, m := range s.movies {
		for _, c := range m.Categories {
			if c == category {
				result = append(result, copyMovie(m))
				break
			}
		}
	}
	return result
}

// Movies returns the catalog in insertion order.
func (s *Store) Movies() []Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Movie, 0, len(s.movies))
	for _, m := range s.movies {
		result = append(result, copyMovie(m))
	}
	return result
}

// GetUser returns a registered user by name.
func (s *Store) GetUser(username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[username]
	if !exists {
		return User{}, ErrUnknownUser
	}
	return copyUser(u), nil
}

// UserExists reports whether the username is registered.
func (s *Store) UserExists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.users[username]
	return exists
}

// Snapshot returns a point-in-time copy of catalog and registry state for
// scoring. It implements recommend.DataProvider: the engine works entirely
// off the copy, so scoring never races a concurrent Rate.
func (s *Store) Snapshot() recommend.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := recommend.Snapshot{
		Movies:    make([]recommend.Movie, 0, len(s.movies)),
		Histories: make(map[string]map[string]float64, len(s.users)),
	}

	for _, m := range s.movies {
		snap.Movies = append(snap.Movies, recommend.Movie{
			Title:      m.Title,
			Categories: append([]string(nil), m.Categories...),
			Ratings:    copyRatings(m.Ratings),
		})
	}
	for name, u := range s.users {
		snap.Histories[name] = copyRatings(u.Ratings)
	}

	return snap
}

// Counts returns the current catalog and registry sizes.
func (s *Store) Counts() (movies, users int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies), len(s.users)
}

func copyMovie(m *Movie) Movie {
	return Movie{
		Title:      m.Title,
		Categories: append([]string(nil), m.Categories...),
		Ratings:    copyRatings(m.Ratings),
	}
}

func copyUser(u *User) User {
	return User{
		Username:    u.Username,
		Ratings:     copyRatings(u.Ratings),
		Preferences: copyRatings(u.Preferences),
	}
}

func copyRatings(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Ensure interface compliance.
var _ recommend.DataProvider = (*Store)(nil)

// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

// AddMovieRequest is the body for POST /api/v1/catalog.
type AddMovieRequest struct {
	// Title is the unique movie identifier.
	Title string `json:"title" validate:"required,max=512"`

	// Categories is the movie's tag set. Optional.
	Categories []string `json:"categories" validate:"omitempty,dive,required,max=128"`
}

// RegisterUserRequest is the body for POST /api/v1/users.
type RegisterUserRequest struct {
	// Username identifies the user. Registration is idempotent.
	Username string `json:"username" validate:"required,max=64"`
}

// RateRequest is the body for POST /api/v1/users/{username}/ratings.
type RateRequest struct {
	// Title is the movie being rated. It does not have to be in the catalog.
	Title string `json:"title" validate:"required,max=512"`

	// Rating is the value to record. Values are stored as given.
	Rating float64 `json:"rating"`
}

// SetPreferenceRequest is the body for PUT /api/v1/users/{username}/preferences.
type SetPreferenceRequest struct {
	// Category is the category the preference applies to.
	Category string `json:"category" validate:"required,max=128"`

	// Weight is the preference weight to record.
	Weight float64 `json:"weight"`
}

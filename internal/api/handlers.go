// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/library"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/metrics"
	"github.com/tomtom215/reelrank/internal/recommend"
	"github.com/tomtom215/reelrank/internal/validation"
)

// Handler holds the dependencies for all HTTP endpoints.
type Handler struct {
	store  *library.Store
	engine *recommend.Engine
	logger zerolog.Logger
}

// NewHandler creates the endpoint handler set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(store *library.Store, engine *recommend.Engine, logger zerolog.Logger) *Handler {
	return &Handler{
		store:  store,
		engine: engine,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// decodeJSON decodes the request body into dst. A false return means the
// error response has already been written.
func (h *Handler) decodeJSON(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("Invalid JSON request body")
		return false
	}
	return true
}

// AddMovie handles POST /api/v1/catalog.
func (h *Handler) AddMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AddMovieRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	movie, err := h.store.AddMovie(req.Title, req.Categories)
	if err != nil {
		if errors.Is(err, library.ErrDuplicateTitle) {
			rw.Conflict("Movie title already in catalog")
			return
		}
		h.logger.Error().Err(err).Str("title", req.Title).Msg("add movie failed")
		rw.InternalError("Failed to add movie")
		return
	}

	rw.Created(movie)
}

// ListCatalog handles GET /api/v1/catalog.
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movies := h.store.Movies()
	rw.SuccessWithMeta(movies, &APIMeta{Count: len(movies)})
}

// averageRatingResponse is the payload for GET /api/v1/catalog/{title}/rating.
type averageRatingResponse struct {
	Title         string  `json:"title"`
	AverageRating float64 `json:"average_rating"`
}

// AverageRating handles GET /api/v1/catalog/{title}/rating.
func (h *Handler) AverageRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	title := chi.URLParam(r, "title")

	avg, err := h.store.AverageRating(title)
	if err != nil {
		switch {
		case errors.Is(err, library.ErrUnknownTitle):
			rw.NotFound("Movie not found")
		case errors.Is(err, library.ErrNoRatings):
			rw.Error(http.StatusNotFound, ErrCodeNoRatings, "Movie has no ratings")
		default:
			h.logger.Error().Err(err).Str("title", title).Msg("average rating failed")
			rw.InternalError("Failed to compute average rating")
		}
		return
	}

	rw.Success(averageRatingResponse{Title: title, AverageRating: avg})
}

// SearchByCategory handles GET /api/v1/search?category=<category>.
func (h *Handler) SearchByCategory(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	category := r.URL.Query().Get("category")
	if category == "" {
		rw.BadRequest("Query parameter 'category' is required")
		return
	}

	movies := h.store.SearchByCategory(category)
	rw.SuccessWithMeta(movies, &APIMeta{Count: len(movies)})
}

// RegisterUser handles POST /api/v1/users.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RegisterUserRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	user := h.store.RegisterUser(req.Username)
	rw.Created(user)
}

// Rate handles POST /api/v1/users/{username}/ratings.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	username := chi.URLParam(r, "username")

	var req RateRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	if err := h.store.Rate(username, req.Title, req.Rating); err != nil {
		if errors.Is(err, library.ErrUnknownUser) {
			rw.NotFound("User not found")
			return
		}
		h.logger.Error().Err(err).
			Str("username", username).
			Str("title", req.Title).
			Msg("rate failed")
		rw.InternalError("Failed to record rating")
		return
	}

	rw.Success(map[string]interface{}{
		"username": username,
		"title":    req.Title,
		"rating":   req.Rating,
	})
}

// SetPreference handles PUT /api/v1/users/{username}/preferences.
func (h *Handler) SetPreference(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	username := chi.URLParam(r, "username")

	var req SetPreferenceRequest
	if !h.decodeJSON(rw, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	if err := h.store.SetPreference(username, req.Category, req.Weight); err != nil {
		if errors.Is(err, library.ErrUnknownUser) {
			rw.NotFound("User not found")
			return
		}
		h.logger.Error().Err(err).Str("username", username).Msg("set preference failed")
		rw.InternalError("Failed to record preference")
		return
	}

	rw.Success(map[string]interface{}{
		"username": username,
		"category": req.Category,
		"weight":   req.Weight,
	})
}

// Recommendations handles GET /api/v1/users/{username}/recommendations?k=<n>.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	start := time.Now()
	username := chi.URLParam(r, "username")

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			rw.BadRequest("Query parameter 'k' must be a non-negative integer")
			return
		}
		k = parsed
	}

	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		Username:  username,
		K:         k,
		RequestID: logging.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		metrics.RecordRecommendation("error", 0, time.Since(start))
		if errors.Is(err, recommend.ErrUnknownUser) {
			rw.NotFound("User not found")
			return
		}
		h.logger.Error().Err(err).Str("username", username).Msg("recommendation failed")
		rw.InternalError("Failed to generate recommendations")
		return
	}

	metrics.RecordRecommendation("success", len(resp.Items), time.Since(start))
	rw.SuccessWithMeta(resp, &APIMeta{Count: len(resp.Items)})
}

// healthResponse is the payload for the health endpoints.
type healthResponse struct {
	Status  string `json:"status"`
	Movies  int    `json:"movies"`
	Users   int    `json:"users"`
	Version string `json:"version,omitempty"`
}

// HealthLive handles GET /api/v1/health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	rw.Success(healthResponse{Status: "ok"})
}

// HealthReady handles GET /api/v1/health/ready. Readiness includes the
// current catalog and registry sizes for quick operational checks.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movies, users := h.store.Counts()
	rw.Success(healthResponse{Status: "ok", Movies: movies, Users: users})
}

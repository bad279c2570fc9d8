// Reelrank - Co-Rating Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/reelrank/internal/logging"
)

func TestRequestIDGenerated(t *testing.T) {
	t.Parallel()

	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured == "" {
		t.Fatal("expected request ID in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != captured {
		t.Fatalf("expected header %q to match context %q", got, captured)
	}
}

func TestRequestIDHonorsUpstream(t *testing.T) {
	t.Parallel()

	var captured string
	var loggingID string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
		loggingID = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if captured != "upstream-123" {
		t.Fatalf("expected upstream ID preserved, got %q", captured)
	}
	if loggingID != "upstream-123" {
		t.Fatalf("expected logging context propagation, got %q", loggingID)
	}
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-123" {
		t.Fatalf("expected upstream ID echoed in header, got %q", got)
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

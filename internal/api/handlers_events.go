// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelscope/internal/cache"
)

// EventsByCategory handles GET /api/v1/events/by-category/{category}.
// The path segment is a category slug ("beauty", "fitness", ...); an
// unknown slug is a 404.
func (h *Handler) EventsByCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "category")

	key := cache.GenerateKey("events_by_category", slug)
	if payload, ok := h.cached(key); ok {
		respondSuccess(w, r, payload, 0, true)
		return
	}

	start := time.Now()
	resp, err := h.events.ByCategory(slug)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	h.store(key, resp)
	respondSuccess(w, r, resp, elapsed, false)
}

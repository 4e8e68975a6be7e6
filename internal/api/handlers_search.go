// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelscope/internal/cache"
	"github.com/tomtom215/reelscope/internal/validation"
)

// Suggestions handles GET /api/v1/search/suggestions: typeahead
// completions for a partial query, drawn from topic names, hashtags,
// and topic phrases.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	params := SuggestionsParams{
		Query: stringParam(r, "q"),
		Limit: parseIntParam(r, "limit"),
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	key := cache.GenerateKey("suggestions", params)
	if payload, ok := h.cached(key); ok {
		respondSuccess(w, r, payload, 0, true)
		return
	}

	start := time.Now()
	resp := h.suggest.Suggestions(params.Query, params.Limit)
	elapsed := time.Since(start)

	h.store(key, resp)
	respondSuccess(w, r, resp, elapsed, false)
}

// RandomSuggestions handles GET /api/v1/search/random-suggestions:
// a shuffled sample of topic phrases and top hashtags for an empty
// search box. Deliberately uncached so repeat visits vary.
func (h *Handler) RandomSuggestions(w http.ResponseWriter, r *http.Request) {
	params := SuggestionsParams{
		Limit: parseIntParam(r, "limit"),
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	start := time.Now()
	resp := h.suggest.RandomSuggestions(params.Limit)
	respondSuccess(w, r, resp, time.Since(start), false)
}

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

// TrendingNow handles GET /api/v1/trending/now: the growth-ranked
// trending list, optionally scoped ("recent" or "all") and filtered to
// one category.
func (h *Handler) TrendingNow(w http.ResponseWriter, r *http.Request) {
	params := TrendingNowParams{
		Scope:    stringParam(r, "scope"),
		Category: stringParam(r, "category"),
		Limit:    parseIntParam(r, "limit"),
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	key := cache.GenerateKey("trending_now", params)
	if payload, ok := h.cached(key); ok {
		respondSuccess(w, r, payload, 0, true)
		return
	}

	start := time.Now()
	resp, err := h.trending.Now(params.Scope, params.Category, params.Limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	h.store(key, resp)
	respondSuccess(w, r, resp, elapsed, false)
}

// TrendingDetail handles GET /api/v1/trending/detail: the drill-down
// view for a single entity, inferred from its sigil (#hashtag,
// @creator, bare category name).
func (h *Handler) TrendingDetail(w http.ResponseWriter, r *http.Request) {
	params := TrendingDetailParams{
		Name:  stringParam(r, "name"),
		Scope: stringParam(r, "scope"),
		Limit: parseIntParam(r, "limit"),
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	key := cache.GenerateKey("trending_detail", params)
	if payload, ok := h.cached(key); ok {
		respondSuccess(w, r, payload, 0, true)
		return
	}

	start := time.Now()
	resp, err := h.trending.Detail(params.Name, params.Scope, params.Limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	h.store(key, resp)
	respondSuccess(w, r, resp, elapsed, false)
}

// ViralTopics handles GET /api/v1/trending/viral-topics: categories
// ranked by total views, rendered as ready-made discovery queries.
func (h *Handler) ViralTopics(w http.ResponseWriter, r *http.Request) {
	params := ViralTopicsParams{
		Limit: parseIntParam(r, "limit"),
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	key := cache.GenerateKey("viral_topics", params)
	if payload, ok := h.cached(key); ok {
		respondSuccess(w, r, payload, 0, true)
		return
	}

	start := time.Now()
	resp, err := h.trending.ViralTopics(params.Limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	h.store(key, resp)
	respondSuccess(w, r, resp, elapsed, false)
}

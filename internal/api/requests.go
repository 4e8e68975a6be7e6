// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package api

import (
	"net/http"
	"strconv"
	"strings"
)

// Query-parameter shapes for the read endpoints. Zero values mean
// "use the engine default"; validation bounds the client-supplied
// values before they reach an engine.

// ExploreParams are the parameters of GET /api/v1/explore.
type ExploreParams struct {
	Query string `validate:"max=200"`
	Rows  int    `validate:"min=0,max=50"`
}

// TrendingNowParams are the parameters of GET /api/v1/trending/now.
type TrendingNowParams struct {
	Scope    string `validate:"omitempty,oneof=recent all"`
	Category string `validate:"max=100"`
	Limit    int    `validate:"min=0,max=100"`
}

// TrendingDetailParams are the parameters of GET /api/v1/trending/detail.
type TrendingDetailParams struct {
	Name  string `validate:"required,max=200"`
	Scope string `validate:"omitempty,oneof=recent all"`
	Limit int    `validate:"min=0,max=100"`
}

// ViralTopicsParams are the parameters of GET /api/v1/trending/viral-topics.
type ViralTopicsParams struct {
	Limit int `validate:"min=0,max=100"`
}

// SuggestionsParams are the parameters of the search suggestion endpoints.
type SuggestionsParams struct {
	Query string `validate:"max=200"`
	Limit int    `validate:"min=0,max=50"`
}

// parseIntParam reads an integer query parameter, treating absent or
// malformed values as zero so the engine default applies.
func parseIntParam(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// stringParam reads a trimmed string query parameter.
func stringParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

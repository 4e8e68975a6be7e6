// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package api provides the HTTP surface of the service: a chi router,
// request parsing and validation, the standard response envelope, and
// the mapping from engine errors to HTTP status codes.
package api

import (
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/cache"
	"github.com/tomtom215/reelscope/internal/config"
	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/events"
	"github.com/tomtom215/reelscope/internal/explore"
	"github.com/tomtom215/reelscope/internal/logging"
	"github.com/tomtom215/reelscope/internal/suggest"
	"github.com/tomtom215/reelscope/internal/trending"
)

// Handler holds the engines behind the HTTP endpoints. All engines
// operate on the same immutable dataset, so Handler carries no locks.
type Handler struct {
	cfg      *config.Config
	logger   zerolog.Logger
	table    *dataset.Table
	explore  *explore.Engine
	trending *trending.Scorer
	suggest  *suggest.Engine
	events   *events.Service
	cache    *cache.Cache
}

// HandlerOptions bundles the dependencies for NewHandler. The cache is
// optional; a nil cache disables response memoization.
type HandlerOptions struct {
	Config   *config.Config
	Table    *dataset.Table
	Explore  *explore.Engine
	Trending *trending.Scorer
	Suggest  *suggest.Engine
	Events   *events.Service
	Cache    *cache.Cache
}

// NewHandler creates the API handler.
func NewHandler(opts HandlerOptions) *Handler {
	return &Handler{
		cfg:      opts.Config,
		logger:   logging.With().Str("component", "api").Logger(),
		table:    opts.Table,
		explore:  opts.Explore,
		trending: opts.Trending,
		suggest:  opts.Suggest,
		events:   opts.Events,
		cache:    opts.Cache,
	}
}

// cached looks up a memoized response payload. Always a miss when the
// cache is disabled.
func (h *Handler) cached(key string) (interface{}, bool) {
	if h.cache == nil {
		return nil, false
	}
	return h.cache.Get(key)
}

// store memoizes a response payload if caching is enabled.
func (h *Handler) store(key string, payload interface{}) {
	if h.cache != nil {
		h.cache.Set(key, payload)
	}
}

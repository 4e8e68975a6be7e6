// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelscope/internal/config"
	"github.com/tomtom215/reelscope/internal/middleware"
)

// NewRouter builds the chi router with the full middleware stack and all
// API routes.
//
// Global middleware order matters: request IDs come first so every later
// layer logs with one, then real-IP extraction (rate limiting keys on
// it), panic recovery, and CORS (global so OPTIONS preflight works on
// every route).
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5, "application/json"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	// Data endpoints share rate limiting and Prometheus instrumentation.
	r.Route("/api/v1", func(r chi.Router) {
		if !cfg.Security.RateLimitDisabled {
			r.Use(httprate.Limit(
				cfg.Security.RateLimitReqs,
				cfg.Security.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(rateLimitExceeded),
			))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/explore", handler.Explore)

		r.Route("/trending", func(r chi.Router) {
			r.Get("/now", handler.TrendingNow)
			r.Get("/detail", handler.TrendingDetail)
			r.Get("/viral-topics", handler.ViralTopics)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/suggestions", handler.Suggestions)
			r.Get("/random-suggestions", handler.RandomSuggestions)
		})

		r.Get("/events/by-category/{category}", handler.EventsByCategory)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", handler.Health)
			r.Get("/live", handler.HealthLive)
			r.Get("/ready", handler.HealthReady)
		})
	})

	// Prometheus scrape endpoint, outside the rate-limited API tree.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// rateLimitExceeded renders 429 in the standard envelope instead of
// httprate's plain-text default.
func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited,
		"Too many requests, slow down", nil)
}

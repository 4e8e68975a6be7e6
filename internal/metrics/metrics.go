// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package metrics exposes Prometheus instrumentation for the API layer,
// the ranking engines, the response cache, and the dataset loader.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Explore Metrics
	ExploreSectionsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "explore_sections_built_total",
			Help: "Total number of explore sections built, by strategy key",
		},
		[]string{"strategy"},
	)

	ExploreDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "explore_build_duration_seconds",
			Help:    "Duration of explore section assembly in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Trending Metrics
	TrendingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trending_score_duration_seconds",
			Help:    "Duration of trend scoring in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	TrendingEntriesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trending_entries_scored_total",
			Help: "Total number of trend entries scored, by entity type",
		},
		[]string{"entity_type"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_evictions_total",
			Help: "Total number of response cache evictions",
		},
		[]string{"cache", "reason"}, // "expired", "capacity"
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "response_cache_entries",
			Help: "Current number of cached responses",
		},
		[]string{"cache"},
	)

	// Dataset Metrics
	DatasetVideosLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_videos_loaded",
			Help: "Number of video records in the loaded table",
		},
	)

	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of artifact loading in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"artifact"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Total number of artifact load failures",
		},
		[]string{"artifact"},
	)

	// Semantic Search Metrics
	SemanticRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semantic_search_requests_total",
			Help: "Total number of semantic search requests",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	SemanticDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "semantic_search_duration_seconds",
			Help:    "Duration of semantic search requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(endpoint, method string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	APIRequestsTotal.WithLabelValues(endpoint, method, code).Inc()
	APIRequestDuration.WithLabelValues(endpoint, method, code).Observe(duration.Seconds())
}

// RecordCacheHit records a response cache hit.
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a response cache miss.
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordCacheEviction records a response cache eviction.
func RecordCacheEviction(cache, reason string) {
	CacheEvictions.WithLabelValues(cache, reason).Inc()
}

// SetCacheEntries updates the cached-entry gauge.
func SetCacheEntries(cache string, n int) {
	CacheEntries.WithLabelValues(cache).Set(float64(n))
}

// RecordSemanticRequest records the outcome of one semantic search call.
func RecordSemanticRequest(result string, duration time.Duration) {
	SemanticRequests.WithLabelValues(result).Inc()
	if result == "success" {
		SemanticDuration.Observe(duration.Seconds())
	}
}

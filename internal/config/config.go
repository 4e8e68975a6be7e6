// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package config

import (
	"time"
)

// Config holds all application configuration loaded from environment
// variables and config files.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Server   ServerConfig   `koanf:"server"`
	Explore  ExploreConfig  `koanf:"explore"`
	Trending TrendingConfig `koanf:"trending"`
	Suggest  SuggestConfig  `koanf:"suggest"`
	Semantic SemanticConfig `koanf:"semantic"`
	Cache    CacheConfig    `koanf:"cache"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DataConfig points at the analytics artifacts produced by the offline
// pipeline. Only the video table is required; every other artifact is an
// optional enrichment that degrades gracefully when absent.
//
// Environment Variables:
//   - DATA_VIDEOS_PATH: Parquet file with the video table (required)
//   - DATA_TOPICS_PATH: JSON topic-id to topic-name map
//   - DATA_DOC_TOPICS_PATH: CSV video-to-topic assignments
//   - DATA_HASHTAG_STATS_PATH: Parquet per-hashtag aggregates
//   - DATA_VIDLINK_MAP_PATH: CSV Google Drive file-id map
//   - DATA_EVENTS_PATH: CSV clustered event summaries
type DataConfig struct {
	VideosPath       string `koanf:"videos_path"`
	TopicsPath       string `koanf:"topics_path"`
	DocTopicsPath    string `koanf:"doc_topics_path"`
	HashtagStatsPath string `koanf:"hashtag_stats_path"`
	VidlinkMapPath   string `koanf:"vidlink_map_path"`
	EventsPath       string `koanf:"events_path"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: "development" or "production"
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// ExploreConfig tunes the explore section builder.
//
// RowsPerSection caps the number of cards per section. Seed pins the
// random source used for variety sampling; 0 seeds from the clock so
// every process start (and every request) shuffles differently.
type ExploreConfig struct {
	RowsPerSection     int   `koanf:"rows_per_section"`
	MaxCreatorSections int   `koanf:"max_creator_sections"`
	MaxHashtagSections int   `koanf:"max_hashtag_sections"`
	CreatorRowCap      int   `koanf:"creator_row_cap"`
	Seed               int64 `koanf:"seed"`
}

// TrendingConfig tunes the growth scorer.
//
// RecentQuantile sets the cut between the historical window and the
// "recent" window: 0.75 means the latest quarter of videos by timestamp
// is the recent scope. Candidate thresholds bound the work done per
// request over large tag and creator vocabularies.
type TrendingConfig struct {
	RecentQuantile       float64 `koanf:"recent_quantile"`
	MaxHashtagCandidates int     `koanf:"max_hashtag_candidates"`
	MinHashtagCount      int     `koanf:"min_hashtag_count"`
	MinCreatorVideos     int     `koanf:"min_creator_videos"`
	MaxCreatorCandidates int     `koanf:"max_creator_candidates"`
	TimeseriesBuckets    int     `koanf:"timeseries_buckets"`
	DefaultLimit         int     `koanf:"default_limit"`
	DetailSampleSize     int     `koanf:"detail_sample_size"`
}

// SuggestConfig tunes search suggestion extraction.
type SuggestConfig struct {
	MaxSuggestions   int `koanf:"max_suggestions"`
	RandomCount      int `koanf:"random_count"`
	MinKeywordLength int `koanf:"min_keyword_length"`
}

// SemanticConfig wires the optional external embedding-search service.
// When disabled (the default) the explore engine falls back to text
// matching and the semantic section is simply skipped.
//
// Environment Variables:
//   - SEMANTIC_ENABLED: Enable the semantic search client
//   - SEMANTIC_URL: Base URL of the embedding service
//   - SEMANTIC_TIMEOUT: Per-request timeout (default: 5s)
//   - SEMANTIC_TOP_K: Neighbors to request per query (default: 30)
type SemanticConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
	TopK    int           `koanf:"top_k"`
}

// CacheConfig tunes the in-process response cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// SecurityConfig holds CORS and rate limiting settings.
//
// Environment Variables:
//   - CORS_ORIGINS: Comma-separated allowed origins
//   - RATE_LIMIT_REQUESTS: Requests per window per client (default: 120)
//   - RATE_LIMIT_WINDOW: Window duration (default: 1m)
//   - DISABLE_RATE_LIMIT: Turn rate limiting off entirely
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: "json" or "console" (default: json)
//   - LOG_CALLER: Include caller file:line in output
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelscope/config.yaml",
	"/etc/reelscope/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns a Config with all built-in defaults applied and no
// file or environment overrides. Tests use it to start from a known
// baseline.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all defaults applied. These are
// loaded first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			VideosPath:       "/data/videos.parquet",
			TopicsPath:       "",
			DocTopicsPath:    "",
			HashtagStatsPath: "",
			VidlinkMapPath:   "",
			EventsPath:       "",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "production",
		},
		Explore: ExploreConfig{
			RowsPerSection:     16,
			MaxCreatorSections: 2,
			MaxHashtagSections: 2,
			CreatorRowCap:      12,
			Seed:               0, // 0 = seed from clock
		},
		Trending: TrendingConfig{
			RecentQuantile:       0.75,
			MaxHashtagCandidates: 200,
			MinHashtagCount:      2,
			MinCreatorVideos:     2,
			MaxCreatorCandidates: 100,
			TimeseriesBuckets:    6,
			DefaultLimit:         10,
			DetailSampleSize:     12,
		},
		Suggest: SuggestConfig{
			MaxSuggestions:   10,
			RandomCount:      5,
			MinKeywordLength: 4,
		},
		Semantic: SemanticConfig{
			Enabled: false,
			URL:     "",
			Timeout: 5 * time.Second,
			TopK:    30,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1024,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config File: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment Variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// FoundConfigFile returns the config file path Load would use: the
// CONFIG_PATH override when set and readable, otherwise the first
// existing default path. Empty when no file is present (defaults and
// env vars still apply).
func FoundConfigFile() string {
	return findConfigFile()
}

// findConfigFile searches for a config file, preferring CONFIG_PATH.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths defines which config paths are parsed as
// comma-separated slices when they arrive as env var strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config
// paths. Unmapped keys return empty string and are skipped, which keeps
// unrelated environment variables out of the config tree.
//
// Examples:
//   - DATA_VIDEOS_PATH -> data.videos_path
//   - HTTP_PORT -> server.port
//   - TRENDING_RECENT_QUANTILE -> trending.recent_quantile
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Data artifact mappings
		"data_videos_path":        "data.videos_path",
		"data_topics_path":        "data.topics_path",
		"data_doc_topics_path":    "data.doc_topics_path",
		"data_hashtag_stats_path": "data.hashtag_stats_path",
		"data_vidlink_map_path":   "data.vidlink_map_path",
		"data_events_path":        "data.events_path",

		// Server mappings
		"http_host":             "server.host",
		"http_port":             "server.port",
		"http_timeout":          "server.timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",
		"environment":           "server.environment",

		// Explore mappings
		"explore_rows_per_section":     "explore.rows_per_section",
		"explore_max_creator_sections": "explore.max_creator_sections",
		"explore_max_hashtag_sections": "explore.max_hashtag_sections",
		"explore_creator_row_cap":      "explore.creator_row_cap",
		"explore_seed":                 "explore.seed",

		// Trending mappings
		"trending_recent_quantile":        "trending.recent_quantile",
		"trending_max_hashtag_candidates": "trending.max_hashtag_candidates",
		"trending_min_hashtag_count":      "trending.min_hashtag_count",
		"trending_min_creator_videos":     "trending.min_creator_videos",
		"trending_max_creator_candidates": "trending.max_creator_candidates",
		"trending_timeseries_buckets":     "trending.timeseries_buckets",
		"trending_default_limit":          "trending.default_limit",
		"trending_detail_sample_size":     "trending.detail_sample_size",

		// Suggest mappings
		"suggest_max_suggestions":    "suggest.max_suggestions",
		"suggest_random_count":       "suggest.random_count",
		"suggest_min_keyword_length": "suggest.min_keyword_length",

		// Semantic search mappings
		"semantic_enabled": "semantic.enabled",
		"semantic_url":     "semantic.url",
		"semantic_timeout": "semantic.timeout",
		"semantic_top_k":   "semantic.top_k",

		// Cache mappings
		"cache_enabled":     "cache.enabled",
		"cache_ttl":         "cache.ttl",
		"cache_max_entries": "cache.max_entries",

		// Security mappings
		"cors_origins":        "security.cors_origins",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability. The
// caller is responsible for mutex protection when swapping configuration
// during reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}

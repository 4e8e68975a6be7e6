// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for invalid or inconsistent values.
// It is called by Load after all layers are merged, so the error messages
// reflect the effective (post-override) configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.VideosPath) == "" {
		return fmt.Errorf("data.videos_path is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}

	if c.Explore.RowsPerSection < 1 {
		return fmt.Errorf("explore.rows_per_section must be at least 1, got %d", c.Explore.RowsPerSection)
	}
	if c.Explore.MaxCreatorSections < 0 || c.Explore.MaxHashtagSections < 0 {
		return fmt.Errorf("explore section limits must be non-negative")
	}
	if c.Explore.CreatorRowCap < 1 {
		return fmt.Errorf("explore.creator_row_cap must be at least 1, got %d", c.Explore.CreatorRowCap)
	}

	if c.Trending.RecentQuantile <= 0 || c.Trending.RecentQuantile >= 1 {
		return fmt.Errorf("trending.recent_quantile must be in (0, 1), got %v", c.Trending.RecentQuantile)
	}
	if c.Trending.TimeseriesBuckets < 1 {
		return fmt.Errorf("trending.timeseries_buckets must be at least 1, got %d", c.Trending.TimeseriesBuckets)
	}
	if c.Trending.DefaultLimit < 1 {
		return fmt.Errorf("trending.default_limit must be at least 1, got %d", c.Trending.DefaultLimit)
	}
	if c.Trending.MinHashtagCount < 1 || c.Trending.MinCreatorVideos < 1 {
		return fmt.Errorf("trending minimum candidate thresholds must be at least 1")
	}

	if c.Suggest.MaxSuggestions < 1 {
		return fmt.Errorf("suggest.max_suggestions must be at least 1, got %d", c.Suggest.MaxSuggestions)
	}
	if c.Suggest.MinKeywordLength < 1 {
		return fmt.Errorf("suggest.min_keyword_length must be at least 1, got %d", c.Suggest.MinKeywordLength)
	}

	if c.Semantic.Enabled {
		if c.Semantic.URL == "" {
			return fmt.Errorf("semantic.url is required when semantic search is enabled")
		}
		parsed, err := url.Parse(c.Semantic.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("semantic.url must be a valid absolute URL, got %q", c.Semantic.URL)
		}
		if c.Semantic.Timeout <= 0 {
			return fmt.Errorf("semantic.timeout must be positive, got %s", c.Semantic.Timeout)
		}
		if c.Semantic.TopK < 1 {
			return fmt.Errorf("semantic.top_k must be at least 1, got %d", c.Semantic.TopK)
		}
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be at least 1, got %d", c.Cache.MaxEntries)
		}
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("security.rate_limit_reqs must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, fatal; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

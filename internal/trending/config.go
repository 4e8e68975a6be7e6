// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package trending

import "fmt"

// Config holds tuning parameters for the growth scorer.
type Config struct {
	// RecentQuantile sets the cut between the historical window and the
	// recent window: 0.75 means the latest quarter of videos (by
	// timestamp, or id order when timestamps are missing) is "recent".
	// This cutoff is a policy heuristic, hence configurable.
	RecentQuantile float64

	// MaxHashtagCandidates caps how many of the most frequent in-scope
	// tags are scored; MinHashtagCount drops one-off tags.
	MaxHashtagCandidates int
	MinHashtagCount      int

	// MinCreatorVideos and MaxCreatorCandidates bound creator scoring.
	MinCreatorVideos     int
	MaxCreatorCandidates int

	// TimeseriesBuckets is the trend-line histogram width.
	TimeseriesBuckets int

	// DefaultLimit applies when a request does not specify a limit.
	DefaultLimit int

	// DetailSampleSize caps the top-video list in entity drill-downs.
	DetailSampleSize int

	// Seed pins the random source used for the synthetic trend-line
	// fallback. 0 seeds from the clock.
	Seed int64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		RecentQuantile:       0.75,
		MaxHashtagCandidates: 200,
		MinHashtagCount:      2,
		MinCreatorVideos:     2,
		MaxCreatorCandidates: 100,
		TimeseriesBuckets:    6,
		DefaultLimit:         10,
		DetailSampleSize:     12,
		Seed:                 0,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.RecentQuantile <= 0 || c.RecentQuantile >= 1 {
		return fmt.Errorf("recent_quantile must be in (0, 1), got %v", c.RecentQuantile)
	}
	if c.MaxHashtagCandidates < 1 {
		return fmt.Errorf("max_hashtag_candidates must be at least 1, got %d", c.MaxHashtagCandidates)
	}
	if c.MinHashtagCount < 1 {
		return fmt.Errorf("min_hashtag_count must be at least 1, got %d", c.MinHashtagCount)
	}
	if c.MinCreatorVideos < 1 {
		return fmt.Errorf("min_creator_videos must be at least 1, got %d", c.MinCreatorVideos)
	}
	if c.MaxCreatorCandidates < 1 {
		return fmt.Errorf("max_creator_candidates must be at least 1, got %d", c.MaxCreatorCandidates)
	}
	if c.TimeseriesBuckets < 1 {
		return fmt.Errorf("timeseries_buckets must be at least 1, got %d", c.TimeseriesBuckets)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be at least 1, got %d", c.DefaultLimit)
	}
	if c.DetailSampleSize < 1 {
		return fmt.Errorf("detail_sample_size must be at least 1, got %d", c.DetailSampleSize)
	}
	return nil
}

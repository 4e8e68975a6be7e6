// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package suggest

import "fmt"

// Config holds tuning parameters for search suggestions.
type Config struct {
	// MaxSuggestions caps the suggestion list when the request does not
	// specify its own limit.
	MaxSuggestions int

	// RandomCount caps the random-suggestions list.
	RandomCount int

	// MinKeywordLength drops short words during topic keyword
	// extraction.
	MinKeywordLength int

	// TopKeywords is how many keywords are kept per topic.
	TopKeywords int

	// Seed pins the random source; 0 seeds from the clock.
	Seed int64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxSuggestions:   10,
		RandomCount:      5,
		MinKeywordLength: 4,
		TopKeywords:      20,
		Seed:             0,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxSuggestions < 1 {
		return fmt.Errorf("max_suggestions must be at least 1, got %d", c.MaxSuggestions)
	}
	if c.RandomCount < 1 {
		return fmt.Errorf("random_count must be at least 1, got %d", c.RandomCount)
	}
	if c.MinKeywordLength < 1 {
		return fmt.Errorf("min_keyword_length must be at least 1, got %d", c.MinKeywordLength)
	}
	if c.TopKeywords < 2 {
		return fmt.Errorf("top_keywords must be at least 2, got %d", c.TopKeywords)
	}
	return nil
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package explore

import "fmt"

// Config holds tuning parameters for the section builder.
type Config struct {
	// RowsPerSection caps the number of cards per section when the
	// request does not specify its own cap.
	RowsPerSection int

	// MaxCreatorSections and MaxHashtagSections bound how many
	// sections the creator and hashtag strategies may each emit.
	MaxCreatorSections int
	MaxHashtagSections int

	// CreatorRowCap limits creator and hashtag section rows even when
	// the request asks for more; dense per-creator rows read poorly.
	CreatorRowCap int

	// Seed pins the random source used for variety sampling. 0 seeds
	// from the clock so repeated identical queries shuffle differently.
	Seed int64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		RowsPerSection:     16,
		MaxCreatorSections: 2,
		MaxHashtagSections: 2,
		CreatorRowCap:      12,
		Seed:               0,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.RowsPerSection < 1 {
		return fmt.Errorf("rows_per_section must be at least 1, got %d", c.RowsPerSection)
	}
	if c.MaxCreatorSections < 0 {
		return fmt.Errorf("max_creator_sections must be non-negative, got %d", c.MaxCreatorSections)
	}
	if c.MaxHashtagSections < 0 {
		return fmt.Errorf("max_hashtag_sections must be non-negative, got %d", c.MaxHashtagSections)
	}
	if c.CreatorRowCap < 1 {
		return fmt.Errorf("creator_row_cap must be at least 1, got %d", c.CreatorRowCap)
	}
	return nil
}

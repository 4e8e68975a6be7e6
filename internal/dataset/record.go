// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one video row of the dataset. Records are immutable after
// load-time enrichment; every request operates on read-only views.
type Record struct {
	// ID is the unique video identifier.
	ID int64

	// Caption, Text, and FullText are the optional text fields. The first
	// non-empty, non-"nan" one (in that order) is the title source.
	Caption  string
	Text     string
	FullText string

	// OwnerUsername is the creator handle; may be empty.
	OwnerUsername string

	// Category is the assigned content category; may be empty.
	Category string

	// HashtagsRaw is the hashtag field as serialized in the source
	// artifact: a JSON-ish list string, a comma list, or plain text.
	HashtagsRaw string

	// ViewCount and LikeCount are non-negative; unparseable source
	// values collapse to 0.
	ViewCount int64
	LikeCount int64

	// EngagementRate is finite and non-negative; NaN/Inf collapse to 0.
	EngagementRate float64

	// Timestamp is the publish time; nil values are excluded from
	// time-based partitioning.
	Timestamp *time.Time

	// EmbedURL, ThumbnailURL, and DisplayURL are optional; embed and
	// thumbnail take precedence over display as fallback.
	EmbedURL     string
	ThumbnailURL string
	DisplayURL   string

	// TopicName is the joined topic assignment, if any.
	TopicName string

	// Derived fields, computed by Table.EnsureDerived.
	Hashtags   []string
	LCCaption  string
	LCText     string
	LCFullText string
	LCCreator  string
	LCCategory string
}

// nan-ish sentinels that pandas-era artifacts leak into string columns.
func isAbsentText(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	return t == "" || t == "nan" || t == "none" || t == "null"
}

// CleanText trims s and collapses the "nan"/"none"/"null" serialization
// sentinels to the empty string.
func CleanText(s string) string {
	if isAbsentText(s) {
		return ""
	}
	return strings.TrimSpace(s)
}

// CoerceInt64 parses s into a non-negative integer. Unparseable, missing,
// or negative values collapse to 0. Float-formatted values ("120.0") are
// accepted and truncated.
func CoerceInt64(s string) int64 {
	s = strings.TrimSpace(s)
	if isAbsentText(s) {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return ClampInt64(f)
	}
	return 0
}

// CoerceFloat parses s into a finite, non-negative float. Unparseable,
// missing, NaN, or infinite values collapse to 0.0.
func CoerceFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if isAbsentText(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return ClampFloat(f)
}

// ClampInt64 converts f to a non-negative int64, collapsing NaN/Inf to 0.
func ClampInt64(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f)
}

// ClampFloat collapses NaN/Inf/negative values to 0.
func ClampFloat(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// Round rounds f to the given number of decimal places, collapsing
// non-finite results to 0.
func Round(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	shift := math.Pow(10, float64(places))
	return math.Round(f*shift) / shift
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package textmatch provides query normalization and literal substring
// matching over video text fields.
//
// Matching is deliberately non-regex: queries are treated as literal text so
// characters like "+" or "(" never trigger pattern-compilation errors. All
// comparisons are case-insensitive with collapsed whitespace.
package textmatch

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, collapses runs of whitespace to single spaces,
// and trims leading/trailing whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// Contains reports whether the normalized query is a literal substring of
// the already-lowercased field value. An empty query matches nothing: the
// explore flow fails closed on blank input.
func Contains(lcField, query string) bool {
	q := Normalize(query)
	if q == "" {
		return false
	}
	return strings.Contains(lcField, q)
}

// MatchesAny reports whether the normalized query is a substring of any of
// the given already-lowercased field values.
func MatchesAny(query string, lcFields ...string) bool {
	q := Normalize(query)
	if q == "" {
		return false
	}
	for _, f := range lcFields {
		if strings.Contains(f, q) {
			return true
		}
	}
	return false
}

// IsNoFilter reports whether a trending category filter means "no filter".
// Empty strings and the UI sentinels "All"/"All categories" all disable
// filtering.
func IsNoFilter(category string) bool {
	switch Normalize(category) {
	case "", "all", "all categories":
		return true
	}
	return false
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package dataset

import (
	"strings"

	"github.com/goccy/go-json"
)

// ParseHashtags converts a serialized hashtag field into a list of tags.
//
// Accepted forms:
//   - JSON arrays: ["sale","promo"]
//   - Python-style quoted lists: ['sale', 'promo']
//   - Delimited text: "sale, promo" or "#sale #promo"
//
// Anything else fails closed to an empty list. The input is never treated
// as executable code, and duplicates are preserved: a tag listed twice
// counts twice when hashtags are exploded for frequency analysis.
func ParseHashtags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if isAbsentText(raw) {
		return nil
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		if tags := parseJSONTags(raw); tags != nil {
			return tags
		}
		return parseBracketedTags(raw)
	}

	return parseDelimitedTags(raw)
}

// parseJSONTags handles well-formed JSON arrays of strings.
func parseJSONTags(raw string) []string {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	tags := make([]string, 0, len(items))
	for _, it := range items {
		if t := cleanTag(it); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseBracketedTags handles python-ish list serializations that are not
// valid JSON, such as ['sale','promo'].
func parseBracketedTags(raw string) []string {
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(inner, ",") {
		if t := cleanTag(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseDelimitedTags splits plain text on commas, semicolons, and spaces.
func parseDelimitedTags(raw string) []string {
	var tags []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	}) {
		if t := cleanTag(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// cleanTag strips quotes, leading '#', and surrounding whitespace from a
// candidate tag. Serialization sentinels collapse to the empty string.
func cleanTag(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `'"`)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSpace(s)
	if isAbsentText(s) {
		return ""
	}
	return s
}

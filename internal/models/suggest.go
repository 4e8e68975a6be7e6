// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package models

// Suggestion types.
const (
	SuggestionTypeCategory    = "category"
	SuggestionTypeHashtag     = "hashtag"
	SuggestionTypeTopicPhrase = "topic_phrase"
)

// Suggestion is a single search suggestion entry.
type Suggestion struct {
	// Text is the suggested query (hashtags carry a leading "#").
	Text string `json:"text"`

	// Type is one of the SuggestionType constants.
	Type string `json:"type"`

	// TopicName names the source topic for topic_phrase suggestions.
	TopicName string `json:"topic_name,omitempty"`
}

// SuggestionsResponse is the payload of the search suggestion endpoints.
// Query is empty for the random-suggestions endpoint.
type SuggestionsResponse struct {
	Query       string       `json:"query,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package models

// VideoCard is the externally rendered projection of a video record.
// Every numeric field is guaranteed finite and non-negative; absent or
// unparseable source values collapse to zero values rather than NaN/Inf.
type VideoCard struct {
	// ID is the unique video identifier.
	ID int64 `json:"id"`

	// Title is derived from caption/text/full_text and truncated to at
	// most five words (with a trailing "..." when truncated).
	Title string `json:"title"`

	// Creator is the owner username, or "Unknown" when absent.
	Creator string `json:"creator"`

	// Category is the assigned content category, or "General" when absent.
	Category string `json:"category"`

	// Views is the view count.
	Views int64 `json:"views"`

	// Likes is the like count.
	Likes int64 `json:"likes"`

	// EngagementRate is rounded to 5 decimal places.
	EngagementRate float64 `json:"engagement_rate"`

	// Thumbnail is the preferred thumbnail URL (thumbnail_url, falling
	// back to display_url). Empty string when neither is set.
	Thumbnail string `json:"thumbnail"`

	// VideoURL is the playable URL (embed_url, falling back to display_url).
	VideoURL string `json:"video_url"`

	// EmbedURL is the embeddable player URL, if any.
	EmbedURL string `json:"embed_url,omitempty"`

	// InstagramURL is the original display URL fallback.
	InstagramURL string `json:"instagram_url"`

	// Hashtags is the normalized hashtag list (never nil in JSON output).
	Hashtags []string `json:"hashtags"`

	// SimilarityScore is set only on cards produced by the semantic
	// strategy; rounded to 4 decimal places.
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
}

// Section is a titled, reasoned group of ranked video cards produced by one
// ranking strategy. Key identifies the strategy: "category", "creator",
// "hashtag", "similar", "semantic", "spotlight", or "more_from_category".
type Section struct {
	Key    string      `json:"key"`
	Title  string      `json:"title"`
	Reason string      `json:"reason"`
	Items  []VideoCard `json:"items"`
}

// ExploreResponse is the payload of the explore endpoint: the echoed query
// and the ordered list of sections. Sections is never nil.
type ExploreResponse struct {
	Query    string    `json:"query"`
	Sections []Section `json:"sections"`
}

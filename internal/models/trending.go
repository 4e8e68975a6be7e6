// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package models

// Trend entity types.
const (
	TrendTypeCategory = "category"
	TrendTypeHashtag  = "hashtag"
	TrendTypeCreator  = "creator"
)

// TrendEntry is a single rising entity (category, hashtag, or creator) with
// its growth score and a compact 6-bucket trend line.
type TrendEntry struct {
	// Name is the entity name (no sigil; hashtag/creator names are bare).
	Name string `json:"name"`

	// Type is one of TrendTypeCategory, TrendTypeHashtag, TrendTypeCreator.
	Type string `json:"type"`

	// Volume is the number of matching videos in the selected scope.
	Volume int `json:"volume"`

	// GrowthPct is the share-delta growth percentage, formatted as a
	// signed percentage string (e.g. "+12.5%").
	GrowthPct string `json:"growth_pct"`

	// LastSeen is a human-readable recency hint derived from the newest
	// matching timestamp, or empty when timestamps are unavailable.
	LastSeen string `json:"last_seen,omitempty"`

	// TotalViews is the summed view count across matching videos.
	TotalViews int64 `json:"total_views"`

	// AvgEngagement is the mean engagement rate across matching videos.
	AvgEngagement float64 `json:"avg_engagement"`

	// RelatedTag is the most frequent co-occurring hashtag, if any.
	RelatedTag string `json:"related_tag,omitempty"`

	// Timeseries is a compact histogram of matching videos over time,
	// oldest bucket first (6 buckets by default). All zeros when the
	// entity has no timestamps.
	Timeseries []int `json:"timeseries"`
}

// TrendingNowResponse is the payload of the trending-now endpoint.
type TrendingNowResponse struct {
	Scope    string       `json:"scope"`
	Category string       `json:"category,omitempty"`
	Trends   []TrendEntry `json:"trends"`
}

// ViralTopic is one category-level topic summary, ranked by total views.
type ViralTopic struct {
	Query         string  `json:"query"`
	Category      string  `json:"category"`
	VideoCount    int     `json:"video_count"`
	TotalViews    int64   `json:"total_views"`
	AvgEngagement float64 `json:"avg_engagement"`
}

// ViralTopicsResponse is the payload of the viral-topics endpoint.
type ViralTopicsResponse struct {
	Topics []ViralTopic `json:"topics"`
}

// TrendDetail is the drill-down payload for a single trending entity.
type TrendDetail struct {
	Name              string      `json:"name"`
	Type              string      `json:"type"`
	Scope             string      `json:"scope"`
	TotalVideos       int         `json:"total_videos"`
	TotalViews        int64       `json:"total_views"`
	AvgEngagement     float64     `json:"avg_engagement"`
	TopVideos         []VideoCard `json:"top_videos"`
	RelatedCategories []string    `json:"related_categories"`
	TopHashtags       []string    `json:"top_hashtags"`
	Timeseries        []int       `json:"timeseries"`
}

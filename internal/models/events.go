// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package models

// EventSegment pairs one sentence of an event summary with the video it
// cites. Video is nil when the cited id has no matching record.
type EventSegment struct {
	Text  string     `json:"text"`
	Video *VideoCard `json:"video"`
}

// Event is one clustered "event" within a category: a group of related
// videos with a generated summary whose sentences cite member videos.
type Event struct {
	EventID          string         `json:"event_id"`
	ClusterSize      int            `json:"cluster_size"`
	TimeStart        string         `json:"time_start"`
	TimeEnd          string         `json:"time_end"`
	SummaryHighlevel string         `json:"summary_highlevel"`
	SummaryText      string         `json:"summary_text"`
	TopHashtags      []string       `json:"top_hashtags"`
	MemberIDs        []int64        `json:"member_ids"`
	SampleVideos     []VideoCard    `json:"sample_videos"`
	Segments         []EventSegment `json:"segments"`
}

// EventsResponse is the payload of the events-by-category endpoint.
type EventsResponse struct {
	Category     string  `json:"category"`
	CategoryName string  `json:"category_name"`
	Events       []Event `json:"events"`
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package events serves clustered event summaries per category. Event
// summaries are generated offline; each summary sentence cites a member
// video with an "[id] sentence" marker, which this package resolves back
// into cards.
package events

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/models"
)

// ErrUnknownCategory is returned for a category slug outside CategoryMap.
var ErrUnknownCategory = errors.New("events: unknown category")

// CategoryMap translates URL slugs to dataset category names.
var CategoryMap = map[string]string{
	"beauty":     "Beauty & Skincare",
	"fitness":    "Fitness & Gym",
	"sports":     "Sports & Athletes",
	"automotive": "Automotive & Cars",
	"health":     "Health & Wellness",
	"gaming":     "Gaming & Tech",
	"finance":    "Finance & Business",
	"pets":       "Pets & Veterinary",
}

const (
	maxSegments     = 10
	maxSampleVideos = 6
)

// segmentPattern matches "[123] some sentence" citation markers.
var segmentPattern = regexp.MustCompile(`\[(\d+)\]\s*([^\[]+)`)

// Service resolves event records against the video table.
type Service struct {
	logger zerolog.Logger
	table  *dataset.Table
	events []dataset.EventRecord
}

// NewService creates an event service. events may be nil when the
// artifact was not loaded.
func NewService(table *dataset.Table, events []dataset.EventRecord, logger zerolog.Logger) *Service {
	return &Service{
		logger: logger.With().Str("component", "events").Logger(),
		table:  table,
		events: events,
	}
}

// ByCategory returns every event in the category named by slug, with
// summary segments and sample videos resolved to cards.
func (s *Service) ByCategory(slug string) (*models.EventsResponse, error) {
	categoryName, ok := CategoryMap[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, slug)
	}

	resp := &models.EventsResponse{
		Category:     slug,
		CategoryName: categoryName,
		Events:       []models.Event{},
	}
	for _, ev := range s.events {
		if ev.Category != categoryName {
			continue
		}
		resp.Events = append(resp.Events, s.buildEvent(ev))
	}
	return resp, nil
}

// buildEvent resolves one raw event row into its wire shape.
func (s *Service) buildEvent(ev dataset.EventRecord) models.Event {
	memberIDs := parseIDList(ev.MemberIDsRaw)
	tags := dataset.ParseHashtags(ev.TopHashtagsRaw)
	if tags == nil {
		tags = []string{}
	}

	segments := []models.EventSegment{}
	for _, seg := range ExtractSegments(ev.SummaryText) {
		if len(segments) >= maxSegments {
			break
		}
		segments = append(segments, models.EventSegment{
			Text:  seg.Text,
			Video: s.cardByID(seg.VideoID),
		})
	}

	samples := []models.VideoCard{}
	for _, id := range memberIDs {
		if len(samples) >= maxSampleVideos {
			break
		}
		if card := s.cardByID(id); card != nil {
			samples = append(samples, *card)
		}
	}

	return models.Event{
		EventID:          ev.EventID,
		ClusterSize:      ev.ClusterSize,
		TimeStart:        ev.TimeStart,
		TimeEnd:          ev.TimeEnd,
		SummaryHighlevel: ev.SummaryHighlevel,
		SummaryText:      ev.SummaryText,
		TopHashtags:      tags,
		MemberIDs:        memberIDs,
		SampleVideos:     samples,
		Segments:         segments,
	}
}

// cardByID resolves a video id into a card, nil when absent.
func (s *Service) cardByID(id int64) *models.VideoCard {
	if s.table == nil {
		return nil
	}
	rec := s.table.ByID(id)
	if rec == nil {
		return nil
	}
	card := dataset.Card(rec)
	return &card
}

// Segment is one cited sentence extracted from an event summary.
type Segment struct {
	VideoID int64
	Text    string
}

// ExtractSegments pulls "[id] sentence" pairs out of a summary text.
// Text without citation markers yields no segments.
func ExtractSegments(text string) []Segment {
	var out []Segment
	for _, m := range segmentPattern.FindAllStringSubmatch(text, -1) {
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		sentence := strings.TrimSpace(m[2])
		if sentence == "" {
			continue
		}
		out = append(out, Segment{VideoID: id, Text: sentence})
	}
	return out
}

// parseIDList parses a serialized id list like "[864, 901]" or
// "['864','901']". Garbage fails closed to an empty list.
func parseIDList(raw string) []int64 {
	out := []int64{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}
	raw = strings.Trim(raw, "[]")
	for _, part := range strings.Split(raw, ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, id)
		}
	}
	return out
}

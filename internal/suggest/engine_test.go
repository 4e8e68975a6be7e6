// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package suggest

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/models"
)

func testFixtures() (*dataset.Table, map[string]string, []dataset.HashtagStat) {
	table := dataset.New([]dataset.Record{
		{ID: 1, FullText: "skincare routine serum skincare glow serum skincare", TopicName: "Skincare Tips"},
		{ID: 2, FullText: "serum review glow routine glow", TopicName: "Skincare Tips"},
		{ID: 3, FullText: "workout plan protein workout gains", TopicName: "Gym Workouts"},
		{ID: 4, FullText: "noise", TopicName: "Outlier Topic"},
	})
	topics := map[string]string{
		"0":  "Skincare Tips",
		"1":  "Gym Workouts",
		"-1": "Outlier Topic",
	}
	stats := []dataset.HashtagStat{
		{Tag: "skincare", Count: 40, MeanEngagement: 0.9},
		{Tag: "gym", Count: 30, MeanEngagement: 0.7},
		{Tag: "glow", Count: 10, MeanEngagement: 0.5},
	}
	return table, topics, stats
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	table, topics, stats := testFixtures()
	cfg := DefaultConfig()
	cfg.Seed = 1
	eng, err := NewEngine(cfg, table, topics, stats, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}

func TestKeywordExtraction(t *testing.T) {
	eng := newTestEngine(t)

	keywords, ok := eng.topicKeywords["Skincare Tips"]
	if !ok {
		t.Fatal("Skincare Tips keywords missing")
	}
	// skincare x4 then glow x3 then serum x3 (serum first seen before
	// glow in record order; glow ties are broken by first occurrence).
	if keywords[0] != "skincare" {
		t.Errorf("keywords[0] = %q, want skincare", keywords[0])
	}

	if _, ok := eng.topicKeywords["Outlier Topic"]; ok {
		t.Error("outlier topic must be excluded from keyword extraction")
	}
}

func TestSuggestionsMatchesTopicsAndHashtags(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Suggestions("skin", 10)
	if resp.Query != "skin" {
		t.Errorf("Query = %q", resp.Query)
	}

	var haveCategory, haveHashtag bool
	for _, s := range resp.Suggestions {
		switch s.Type {
		case models.SuggestionTypeCategory:
			if s.Text == "Skincare Tips" {
				haveCategory = true
			}
		case models.SuggestionTypeHashtag:
			if s.Text == "#skincare" {
				haveHashtag = true
			}
		}
	}
	if !haveCategory {
		t.Error("expected Skincare Tips category suggestion")
	}
	if !haveHashtag {
		t.Error("expected #skincare hashtag suggestion")
	}
}

func TestSuggestionsDeduplicated(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.Suggestions("s", 20)
	seen := map[string]bool{}
	for _, s := range resp.Suggestions {
		if seen[s.Text] {
			t.Errorf("duplicate suggestion %q", s.Text)
		}
		seen[s.Text] = true
	}
}

func TestSuggestionsBlankQueryEmpty(t *testing.T) {
	eng := newTestEngine(t)
	resp := eng.Suggestions("   ", 10)
	if len(resp.Suggestions) != 0 {
		t.Errorf("blank query suggestions = %v, want none", resp.Suggestions)
	}
}

func TestSuggestionsLimit(t *testing.T) {
	eng := newTestEngine(t)
	resp := eng.Suggestions("s", 1)
	if len(resp.Suggestions) > 1 {
		t.Errorf("len = %d, want at most 1", len(resp.Suggestions))
	}
}

func TestRandomSuggestions(t *testing.T) {
	eng := newTestEngine(t)

	resp := eng.RandomSuggestions(10)
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected some random suggestions")
	}
	for _, s := range resp.Suggestions {
		switch s.Type {
		case models.SuggestionTypeTopicPhrase:
			if len(strings.Fields(s.Text)) != 2 {
				t.Errorf("topic phrase %q is not two words", s.Text)
			}
			if s.TopicName == "" {
				t.Errorf("topic phrase %q missing topic name", s.Text)
			}
		case models.SuggestionTypeHashtag:
			if !strings.HasPrefix(s.Text, "#") {
				t.Errorf("hashtag suggestion %q missing sigil", s.Text)
			}
		default:
			t.Errorf("unexpected suggestion type %q", s.Type)
		}
	}
}

func TestRandomSuggestionsLimit(t *testing.T) {
	eng := newTestEngine(t)
	resp := eng.RandomSuggestions(1)
	if len(resp.Suggestions) != 1 {
		t.Errorf("len = %d, want 1", len(resp.Suggestions))
	}
}

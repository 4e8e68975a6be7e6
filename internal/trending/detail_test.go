// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package trending

import (
	"errors"
	"testing"

	"github.com/tomtom215/reelscope/internal/models"
)

func TestDetailSigilInference(t *testing.T) {
	tests := []struct {
		name     string
		wantType string
		wantName string
	}{
		{"#skincare", models.TrendTypeHashtag, "skincare"},
		{"@glowqueen", models.TrendTypeCreator, "glowqueen"},
		{"Beauty", models.TrendTypeCategory, "beauty"},
	}
	for _, tt := range tests {
		entityType, bare := inferEntity(tt.name)
		if entityType != tt.wantType || bare != tt.wantName {
			t.Errorf("inferEntity(%q) = (%s, %s), want (%s, %s)", tt.name, entityType, bare, tt.wantType, tt.wantName)
		}
	}
}

func TestDetailCategory(t *testing.T) {
	s := newTestScorer(t, growthTable())

	d, err := s.Detail("Beauty", ScopeAll, 3)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Type != models.TrendTypeCategory || d.Name != "beauty" {
		t.Errorf("identity = %s/%s", d.Type, d.Name)
	}
	if d.TotalVideos != 6 {
		t.Errorf("TotalVideos = %d, want 6", d.TotalVideos)
	}
	if len(d.TopVideos) != 3 {
		t.Errorf("TopVideos = %d, want limit 3", len(d.TopVideos))
	}
	if len(d.RelatedCategories) != 1 || d.RelatedCategories[0] != "Beauty" {
		t.Errorf("RelatedCategories = %v", d.RelatedCategories)
	}
	sum := 0
	for _, b := range d.Timeseries {
		sum += b
	}
	if sum != 6 {
		t.Errorf("timeseries sum = %d, want 6", sum)
	}
}

func TestDetailHashtagExcludesSelfFromTopTags(t *testing.T) {
	s := newTestScorer(t, growthTable())

	d, err := s.Detail("#skincare", ScopeAll, 5)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.TotalVideos != 6 {
		t.Errorf("TotalVideos = %d, want 6", d.TotalVideos)
	}
	for _, tag := range d.TopHashtags {
		if tag == "skincare" {
			t.Error("entity's own tag must not appear in TopHashtags")
		}
	}
	if len(d.TopHashtags) == 0 || d.TopHashtags[0] != "glow" {
		t.Errorf("TopHashtags = %v, want glow first", d.TopHashtags)
	}
}

func TestDetailCreator(t *testing.T) {
	s := newTestScorer(t, growthTable())

	d, err := s.Detail("@liftlab", ScopeAll, 5)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.TotalVideos != 2 {
		t.Errorf("TotalVideos = %d, want 2", d.TotalVideos)
	}
	if d.TotalViews != 700+800 {
		t.Errorf("TotalViews = %d, want 1500", d.TotalViews)
	}
}

func TestDetailUnknownEntity(t *testing.T) {
	s := newTestScorer(t, growthTable())

	if _, err := s.Detail("no-such-category", ScopeAll, 5); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("err = %v, want ErrUnknownEntity", err)
	}
	if _, err := s.Detail("   ", ScopeAll, 5); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("blank name err = %v, want ErrUnknownEntity", err)
	}
}

func TestDetailRecentScopeRestricts(t *testing.T) {
	s := newTestScorer(t, growthTable())

	// Beauty exists only outside the recent quarter.
	if _, err := s.Detail("Beauty", ScopeRecent, 5); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("err = %v, want ErrUnknownEntity in recent scope", err)
	}

	d, err := s.Detail("Fitness", ScopeRecent, 5)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if d.Scope != ScopeRecent || d.TotalVideos != 2 {
		t.Errorf("scope/videos = %s/%d, want recent/2", d.Scope, d.TotalVideos)
	}
}

func TestViralTopicsRankedByViews(t *testing.T) {
	s := newTestScorer(t, growthTable())

	resp, err := s.ViralTopics(10)
	if err != nil {
		t.Fatalf("ViralTopics: %v", err)
	}
	if len(resp.Topics) != 2 {
		t.Fatalf("topics = %d, want 2", len(resp.Topics))
	}
	// Beauty: 100+..+600 = 2100; Fitness: 700+800 = 1500.
	if resp.Topics[0].Category != "Beauty" || resp.Topics[0].TotalViews != 2100 {
		t.Errorf("topics[0] = %+v", resp.Topics[0])
	}
	if resp.Topics[1].Category != "Fitness" || resp.Topics[1].VideoCount != 2 {
		t.Errorf("topics[1] = %+v", resp.Topics[1])
	}
}

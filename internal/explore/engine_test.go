// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package explore

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/models"
)

func testTable() *dataset.Table {
	return dataset.New([]dataset.Record{
		{ID: 1, Caption: "Glow routine", OwnerUsername: "glowqueen", Category: "Beauty", HashtagsRaw: `["skincare"]`, ViewCount: 1000, EngagementRate: 0.5},
		{ID: 2, Caption: "Serum haul", OwnerUsername: "glowqueen", Category: "Beauty", HashtagsRaw: `["skincare","haul"]`, ViewCount: 2000, EngagementRate: 0.9},
		{ID: 3, Caption: "Leg day", OwnerUsername: "liftlab", Category: "Fitness", HashtagsRaw: `["gym"]`, ViewCount: 5000, EngagementRate: 0.3},
	})
}

func newTestEngine(t *testing.T, table *dataset.Table) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 1
	eng, err := NewEngine(cfg, table, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}

func findSection(sections []models.Section, key string) *models.Section {
	for i := range sections {
		if sections[i].Key == key {
			return &sections[i]
		}
	}
	return nil
}

func TestExploreCategoryScenario(t *testing.T) {
	eng := newTestEngine(t, testTable())

	resp, err := eng.Explore(context.Background(), "beauty", 2)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	sec := findSection(resp.Sections, "category")
	if sec == nil {
		t.Fatal("no category section returned")
	}
	if sec.Title != "Because you searched 'beauty'" {
		t.Errorf("Title = %q", sec.Title)
	}
	if sec.Reason != "Top in Beauty" {
		t.Errorf("Reason = %q", sec.Reason)
	}
	if len(sec.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(sec.Items))
	}
	// Both Beauty videos, engagement descending.
	if sec.Items[0].ID != 2 || sec.Items[1].ID != 1 {
		t.Errorf("item order = [%d %d], want [2 1]", sec.Items[0].ID, sec.Items[1].ID)
	}
}

func TestExploreCreatorSection(t *testing.T) {
	eng := newTestEngine(t, testTable())

	resp, err := eng.Explore(context.Background(), "glowqueen", 5)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	sec := findSection(resp.Sections, "creator")
	if sec == nil {
		t.Fatal("no creator section returned")
	}
	if sec.Title != "Popular from @glowqueen" {
		t.Errorf("Title = %q", sec.Title)
	}
	got := map[int64]bool{}
	for _, it := range sec.Items {
		got[it.ID] = true
	}
	if !got[1] || !got[2] || len(got) != 2 {
		t.Errorf("creator section ids = %v, want {1,2}", got)
	}
}

func TestExploreHashtagSectionTitleLowercase(t *testing.T) {
	eng := newTestEngine(t, testTable())

	resp, err := eng.Explore(context.Background(), "skincare", 5)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	sec := findSection(resp.Sections, "hashtag")
	if sec == nil {
		t.Fatal("no hashtag section returned")
	}
	if sec.Title != "Trending with #skincare" {
		t.Errorf("Title = %q", sec.Title)
	}
}

func TestExploreSpotlightFallback(t *testing.T) {
	eng := newTestEngine(t, testTable())

	resp, err := eng.Explore(context.Background(), "zzz-no-such-thing", 2)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if len(resp.Sections) == 0 {
		t.Fatal("fallback must guarantee a non-empty response")
	}
	if resp.Sections[0].Key != "spotlight" {
		t.Errorf("first section key = %q, want spotlight", resp.Sections[0].Key)
	}
	if resp.Sections[0].Title != "Now Trending" {
		t.Errorf("Title = %q", resp.Sections[0].Title)
	}
}

func TestExploreSectionsDeduped(t *testing.T) {
	eng := newTestEngine(t, testTable())

	resp, err := eng.Explore(context.Background(), "beauty", 10)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	for _, sec := range resp.Sections {
		seen := map[int64]bool{}
		for _, it := range sec.Items {
			if seen[it.ID] {
				t.Errorf("section %q contains duplicate id %d", sec.Key, it.ID)
			}
			seen[it.ID] = true
		}
	}
}

func TestExploreNilTable(t *testing.T) {
	eng := newTestEngine(t, nil)
	if _, err := eng.Explore(context.Background(), "beauty", 2); !errors.Is(err, dataset.ErrNotLoaded) {
		t.Errorf("err = %v, want ErrNotLoaded", err)
	}
}

func TestExploreEmptyQueryFallsBackToSpotlight(t *testing.T) {
	eng := newTestEngine(t, testTable())
	resp, err := eng.Explore(context.Background(), "   ", 3)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	// Blank queries match nothing and land on the fallback.
	if sec := findSection(resp.Sections, "spotlight"); sec == nil {
		t.Error("expected spotlight fallback for blank query")
	}
}

type stubSearcher struct {
	matches []SemanticMatch
	err     error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]SemanticMatch, error) {
	return s.matches, s.err
}

func TestSemanticSectionExcludesShown(t *testing.T) {
	eng := newTestEngine(t, testTable())
	eng.SetSemanticSearcher(&stubSearcher{matches: []SemanticMatch{
		{ID: 2, Score: 0.91},
		{ID: 3, Score: 0.82},
	}})

	resp, err := eng.Explore(context.Background(), "beauty", 5)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	sec := findSection(resp.Sections, "semantic")
	if sec == nil {
		t.Fatal("no semantic section returned")
	}
	for _, it := range sec.Items {
		if it.ID == 1 || it.ID == 2 {
			t.Errorf("semantic section repeats already-shown id %d", it.ID)
		}
		if it.SimilarityScore == nil {
			t.Error("semantic card missing similarity score")
		}
	}
}

func TestSemanticFailureOmitsSection(t *testing.T) {
	eng := newTestEngine(t, testTable())
	eng.SetSemanticSearcher(&stubSearcher{err: errors.New("connection refused")})

	resp, err := eng.Explore(context.Background(), "beauty", 5)
	if err != nil {
		t.Fatalf("semantic failure must not propagate: %v", err)
	}
	if findSection(resp.Sections, "semantic") != nil {
		t.Error("failed semantic search must omit the section")
	}
}

func TestMoreFromCategoryNeedsThreeEligible(t *testing.T) {
	// Every Beauty video gets shown by the category section, so no
	// more_from_category section can form from the leftovers.
	eng := newTestEngine(t, testTable())
	resp, err := eng.Explore(context.Background(), "beauty", 10)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if findSection(resp.Sections, "more_from_category") != nil {
		t.Error("more_from_category requires at least 3 unshown videos")
	}
}

func TestCategoryMembershipStableAcrossCalls(t *testing.T) {
	eng := newTestEngine(t, testTable())

	ids := func() []int64 {
		resp, err := eng.Explore(context.Background(), "beauty", 2)
		if err != nil {
			t.Fatalf("Explore: %v", err)
		}
		sec := findSection(resp.Sections, "category")
		if sec == nil {
			t.Fatal("no category section")
		}
		var out []int64
		for _, it := range sec.Items {
			out = append(out, it.ID)
		}
		return out
	}

	first := ids()
	for i := 0; i < 5; i++ {
		next := ids()
		if len(next) != len(first) {
			t.Fatalf("membership size changed: %v vs %v", first, next)
		}
		for j := range first {
			if first[j] != next[j] {
				t.Errorf("category section order changed: %v vs %v", first, next)
			}
		}
	}
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package dataset

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func testRecords() []Record {
	ts := func(s string) *time.Time {
		v, err := time.Parse("2006-01-02", s)
		if err != nil {
			panic(err)
		}
		return &v
	}
	return []Record{
		{ID: 1, Caption: "Glow up routine", OwnerUsername: "glowqueen", Category: "Beauty & Skincare", HashtagsRaw: `["skincare","glow"]`, ViewCount: 1000, LikeCount: 100, EngagementRate: 0.10, Timestamp: ts("2025-01-01")},
		{ID: 2, Caption: "Leg day", OwnerUsername: "liftlab", Category: "Fitness & Gym", HashtagsRaw: "#gym #legday", ViewCount: 5000, LikeCount: 250, EngagementRate: 0.05, Timestamp: ts("2025-02-01")},
		{ID: 3, Caption: "Serum review", OwnerUsername: "glowqueen", Category: "Beauty & Skincare", HashtagsRaw: `['skincare','skincare']`, ViewCount: 2000, LikeCount: 200, EngagementRate: 0.10, Timestamp: ts("2025-03-01")},
		{ID: 4, Caption: "nan", Text: "Quick oil change tips for beginners today", Category: "Automotive & Cars", ViewCount: 300, LikeCount: 3, EngagementRate: 0.01},
	}
}

func TestEnsureDerivedIdempotent(t *testing.T) {
	tbl := New(testRecords())
	before := make([]Record, tbl.Len())
	for i, r := range tbl.All() {
		before[i] = *r
	}

	tbl.EnsureDerived()
	tbl.EnsureDerived()

	for i, r := range tbl.All() {
		if !reflect.DeepEqual(before[i], *r) {
			t.Errorf("record %d changed after repeated EnsureDerived: %+v != %+v", r.ID, before[i], *r)
		}
	}
}

func TestEnsureDerivedFields(t *testing.T) {
	tbl := New(testRecords())
	r := tbl.ByID(1)
	if r == nil {
		t.Fatal("record 1 not found")
	}
	if r.LCCreator != "glowqueen" || r.LCCategory != "beauty & skincare" {
		t.Errorf("lowercase fields = %q, %q", r.LCCreator, r.LCCategory)
	}
	if !reflect.DeepEqual(r.Hashtags, []string{"skincare", "glow"}) {
		t.Errorf("Hashtags = %v", r.Hashtags)
	}

	// "nan" caption collapses during derivation.
	if got := tbl.ByID(4).Caption; got != "" {
		t.Errorf("sentinel caption survived derivation: %q", got)
	}
}

func TestTopKOrdering(t *testing.T) {
	tbl := New(testRecords())
	top := TopK(tbl.All(), 3)

	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	// IDs 1 and 3 tie on engagement (0.10); 3 wins on views, then 1,
	// then 2 with the lower rate.
	wantIDs := []int64{3, 1, 2}
	for i, want := range wantIDs {
		if top[i].ID != want {
			t.Errorf("top[%d].ID = %d, want %d", i, top[i].ID, want)
		}
	}
}

func TestTopKStableOnFullTies(t *testing.T) {
	recs := []*Record{
		{ID: 10, EngagementRate: 0.5, ViewCount: 100},
		{ID: 11, EngagementRate: 0.5, ViewCount: 100},
		{ID: 12, EngagementRate: 0.5, ViewCount: 100},
	}
	top := TopK(recs, 3)
	for i, want := range []int64{10, 11, 12} {
		if top[i].ID != want {
			t.Errorf("top[%d].ID = %d, want %d (ties must keep input order)", i, top[i].ID, want)
		}
	}
}

func TestTopKDoesNotMutateInput(t *testing.T) {
	recs := []*Record{
		{ID: 1, EngagementRate: 0.1},
		{ID: 2, EngagementRate: 0.9},
	}
	TopK(recs, 1)
	if recs[0].ID != 1 || recs[1].ID != 2 {
		t.Error("TopK reordered its input slice")
	}
}

func TestSampleNDeterministicPerSeed(t *testing.T) {
	tbl := New(testRecords())

	ids := func(seed int64) []int64 {
		rng := rand.New(rand.NewSource(seed))
		var out []int64
		for _, r := range SampleN(rng, tbl.All(), 3) {
			out = append(out, r.ID)
		}
		return out
	}

	if got, want := ids(42), ids(42); !reflect.DeepEqual(got, want) {
		t.Errorf("same seed diverged: %v vs %v", got, want)
	}
	if got := ids(42); len(got) != 3 {
		t.Errorf("sample size = %d, want 3", len(got))
	}
}

func TestSampleNLargerThanInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	recs := []*Record{{ID: 1}, {ID: 2}}
	if got := SampleN(rng, recs, 10); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestExplodeHashtagsPreservesDuplicates(t *testing.T) {
	tbl := New(testRecords())
	rows := ExplodeHashtags(tbl.Filter(func(r *Record) bool { return r.ID == 3 }))
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2 (duplicate tag must contribute two rows)", len(rows))
	}
	for _, row := range rows {
		if row.Tag != "skincare" {
			t.Errorf("Tag = %q, want %q", row.Tag, "skincare")
		}
		if row.Rec.ID != 3 {
			t.Errorf("Rec.ID = %d, want 3", row.Rec.ID)
		}
	}
}

func TestSortByTimestamp(t *testing.T) {
	tbl := New(testRecords())
	sorted := SortByTimestamp(tbl.All())

	// Record 4 has no timestamp and sorts first; the rest ascend.
	wantIDs := []int64{4, 1, 2, 3}
	for i, want := range wantIDs {
		if sorted[i].ID != want {
			t.Errorf("sorted[%d].ID = %d, want %d", i, sorted[i].ID, want)
		}
	}
}

func TestFilterAndByID(t *testing.T) {
	tbl := New(testRecords())

	beauty := tbl.Filter(func(r *Record) bool { return r.LCCategory == "beauty & skincare" })
	if len(beauty) != 2 {
		t.Errorf("beauty filter len = %d, want 2", len(beauty))
	}

	if tbl.ByID(999) != nil {
		t.Error("ByID(999) should be nil")
	}
}

func TestAggregates(t *testing.T) {
	tbl := New(testRecords())
	all := tbl.All()

	if got := SumViews(all); got != 8300 {
		t.Errorf("SumViews = %d, want 8300", got)
	}
	if got := AvgEngagement(nil); got != 0 {
		t.Errorf("AvgEngagement(nil) = %v, want 0", got)
	}
	if got := AvgEngagement(all); got != (0.10+0.05+0.10+0.01)/4 {
		t.Errorf("AvgEngagement = %v", got)
	}
}

func TestHasTimestamps(t *testing.T) {
	tbl := New(testRecords())
	if !tbl.HasTimestamps() {
		t.Error("HasTimestamps = false, want true")
	}
	empty := New([]Record{{ID: 1}})
	if empty.HasTimestamps() {
		t.Error("HasTimestamps on timestamp-free table = true, want false")
	}
}

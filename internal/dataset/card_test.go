// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package dataset

import (
	"strings"
	"testing"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "caption wins",
			rec:  Record{Caption: "Morning glow", Text: "ignored", FullText: "ignored"},
			want: "Morning glow",
		},
		{
			name: "falls through nan caption to text",
			rec:  Record{Caption: "nan", Text: "Oil change tips"},
			want: "Oil change tips",
		},
		{
			name: "falls through to full text",
			rec:  Record{FullText: "Full transcript here"},
			want: "Full transcript here",
		},
		{
			name: "category fallback",
			rec:  Record{Category: "Fitness & Gym"},
			want: "Fitness & Gym video",
		},
		{
			name: "literal fallback",
			rec:  Record{},
			want: "Video",
		},
		{
			name: "truncated to five words",
			rec:  Record{Caption: "one two three four five six seven"},
			want: "one two three four five...",
		},
		{
			name: "exactly five words untouched",
			rec:  Record{Caption: "one two three four five"},
			want: "one two three four five",
		},
		{
			name: "whitespace collapsed",
			rec:  Record{Caption: "  spaced   out    caption  "},
			want: "spaced out caption",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTitle(&tt.rec); got != tt.want {
				t.Errorf("DeriveTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCardURLPrecedence(t *testing.T) {
	tests := []struct {
		name          string
		rec           Record
		wantVideo     string
		wantThumbnail string
	}{
		{
			name:          "embed and thumbnail present",
			rec:           Record{EmbedURL: "https://e", ThumbnailURL: "https://t", DisplayURL: "https://d"},
			wantVideo:     "https://e",
			wantThumbnail: "https://t",
		},
		{
			name:          "display fills both gaps",
			rec:           Record{DisplayURL: "https://d"},
			wantVideo:     "https://d",
			wantThumbnail: "https://d",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := Card(&tt.rec)
			if card.VideoURL != tt.wantVideo {
				t.Errorf("VideoURL = %q, want %q", card.VideoURL, tt.wantVideo)
			}
			if card.Thumbnail != tt.wantThumbnail {
				t.Errorf("Thumbnail = %q, want %q", card.Thumbnail, tt.wantThumbnail)
			}
		})
	}
}

func TestCardFallbacksAndClamps(t *testing.T) {
	rec := Record{ID: 7, ViewCount: 100, LikeCount: 5, EngagementRate: 0.123456789}
	card := Card(&rec)

	if card.Creator != "Unknown" {
		t.Errorf("Creator = %q, want Unknown", card.Creator)
	}
	if card.Category != "General" {
		t.Errorf("Category = %q, want General", card.Category)
	}
	if card.EngagementRate != 0.12346 {
		t.Errorf("EngagementRate = %v, want 0.12346", card.EngagementRate)
	}
	if card.Hashtags == nil {
		t.Error("Hashtags must serialize as [], not null")
	}
	if len(strings.Fields(card.Title)) > titleMaxWords+1 {
		t.Errorf("Title exceeds word cap: %q", card.Title)
	}
}

func TestCards(t *testing.T) {
	tbl := New(testRecords())
	cards := Cards(tbl.All())
	if len(cards) != tbl.Len() {
		t.Fatalf("len = %d, want %d", len(cards), tbl.Len())
	}
	if cards[0].ID != 1 || cards[0].Title != "Glow up routine" {
		t.Errorf("cards[0] = %+v", cards[0])
	}
	if got := Cards(nil); got == nil || len(got) != 0 {
		t.Errorf("Cards(nil) = %v, want empty non-nil slice", got)
	}
}

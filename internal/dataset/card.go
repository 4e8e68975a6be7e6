// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package dataset

import (
	"strings"

	"github.com/tomtom215/reelscope/internal/models"
)

// titleMaxWords caps derived titles at five words; longer sources are
// truncated with a trailing ellipsis.
const titleMaxWords = 5

// Card projects a record into its externally visible card shape. The
// projection is deterministic and defensive: every numeric output is finite
// and non-negative, and optional fields collapse to stable fallbacks.
func Card(r *Record) models.VideoCard {
	videoURL := r.EmbedURL
	if videoURL == "" {
		videoURL = r.DisplayURL
	}
	thumbnail := r.ThumbnailURL
	if thumbnail == "" {
		thumbnail = r.DisplayURL
	}

	creator := r.OwnerUsername
	if creator == "" {
		creator = "Unknown"
	}
	category := r.Category
	if category == "" {
		category = "General"
	}

	hashtags := r.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}

	return models.VideoCard{
		ID:             r.ID,
		Title:          DeriveTitle(r),
		Creator:        creator,
		Category:       category,
		Views:          ClampInt64(float64(r.ViewCount)),
		Likes:          ClampInt64(float64(r.LikeCount)),
		EngagementRate: Round(ClampFloat(r.EngagementRate), 5),
		Thumbnail:      thumbnail,
		VideoURL:       videoURL,
		EmbedURL:       r.EmbedURL,
		InstagramURL:   r.DisplayURL,
		Hashtags:       hashtags,
	}
}

// Cards projects a slice of records.
func Cards(recs []*Record) []models.VideoCard {
	out := make([]models.VideoCard, 0, len(recs))
	for _, r := range recs {
		out = append(out, Card(r))
	}
	return out
}

// DeriveTitle resolves the card title through an ordered fallback chain:
// caption, text, full_text, "{category} video", then the literal "Video".
// The result has collapsed whitespace and at most five words; truncated
// titles gain a trailing "...".
func DeriveTitle(r *Record) string {
	title := CleanText(r.Caption)
	if title == "" {
		title = CleanText(r.Text)
	}
	if title == "" {
		title = CleanText(r.FullText)
	}
	if title == "" {
		if cat := CleanText(r.Category); cat != "" {
			title = cat + " video"
		} else {
			title = "Video"
		}
	}

	words := strings.Fields(title)
	if len(words) > titleMaxWords {
		return strings.Join(words[:titleMaxWords], " ") + "..."
	}
	return strings.Join(words, " ")
}

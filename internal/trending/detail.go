// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package trending

import (
	"strings"
	"time"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/metrics"
	"github.com/tomtom215/reelscope/internal/models"
	"github.com/tomtom215/reelscope/internal/textmatch"
)

// Detail builds the drill-down for a single trending entity. The entity
// type is inferred from a leading sigil on name: "#" means hashtag, "@"
// means creator, anything else is treated as a category. A name with no
// matching videos in scope returns ErrUnknownEntity.
func (s *Scorer) Detail(name, scope string, limit int) (*models.TrendDetail, error) {
	if s.table == nil {
		return nil, dataset.ErrNotLoaded
	}
	defer func(start time.Time) {
		metrics.TrendingDuration.WithLabelValues("detail").Observe(time.Since(start).Seconds())
	}(time.Now())

	if scope != ScopeAll {
		scope = ScopeRecent
	}
	if limit <= 0 {
		limit = s.config.DetailSampleSize
	}

	entityType, bare := inferEntity(name)
	lc := strings.ToLower(bare)
	if lc == "" {
		return nil, ErrUnknownEntity
	}

	working := s.table.All()
	selected := working
	if scope == ScopeRecent {
		selected = s.recentSlice(working)
	}

	matching := filterRecords(selected, entityPredicate(entityType, lc))
	if len(matching) == 0 {
		return nil, ErrUnknownEntity
	}

	top := dataset.TopK(matching, limit)

	return &models.TrendDetail{
		Name:              bare,
		Type:              entityType,
		Scope:             scope,
		TotalVideos:       len(matching),
		TotalViews:        dataset.SumViews(matching),
		AvgEngagement:     dataset.Round(dataset.AvgEngagement(matching), 4),
		TopVideos:         dataset.Cards(top),
		RelatedCategories: relatedCategories(matching, 5),
		TopHashtags:       topHashtags(matching, lc, 10),
		Timeseries:        s.timeseries(matching),
	}, nil
}

// inferEntity splits the sigil off a trending-detail name.
func inferEntity(name string) (entityType, bare string) {
	name = textmatch.Normalize(name)
	switch {
	case strings.HasPrefix(name, "#"):
		return models.TrendTypeHashtag, strings.TrimPrefix(name, "#")
	case strings.HasPrefix(name, "@"):
		return models.TrendTypeCreator, strings.TrimPrefix(name, "@")
	default:
		return models.TrendTypeCategory, name
	}
}

// entityPredicate matches records against a lowercased entity name.
func entityPredicate(entityType, lc string) func(*dataset.Record) bool {
	switch entityType {
	case models.TrendTypeHashtag:
		return func(r *dataset.Record) bool {
			for _, tag := range r.Hashtags {
				if strings.ToLower(tag) == lc {
					return true
				}
			}
			return false
		}
	case models.TrendTypeCreator:
		return func(r *dataset.Record) bool { return r.LCCreator == lc }
	default:
		return func(r *dataset.Record) bool { return r.LCCategory == lc }
	}
}

// relatedCategories returns the most frequent categories among matching
// records, most frequent first.
func relatedCategories(matching []*dataset.Record, n int) []string {
	counts := make(map[string]int)
	for _, r := range matching {
		if r.Category == "" || strings.EqualFold(r.Category, "none") {
			continue
		}
		counts[r.Category]++
	}
	out := topNByCount(counts, n)
	if out == nil {
		out = []string{}
	}
	return out
}

// topHashtags returns the most frequent tags among matching records,
// excluding the entity's own name.
func topHashtags(matching []*dataset.Record, self string, n int) []string {
	freq := make(map[string]int)
	for _, row := range dataset.ExplodeHashtags(matching) {
		if row.Tag == self {
			continue
		}
		freq[row.Tag]++
	}
	out := topNByCount(freq, n)
	if out == nil {
		out = []string{}
	}
	return out
}

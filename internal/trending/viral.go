// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package trending

import (
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/metrics"
	"github.com/tomtom215/reelscope/internal/models"
)

// ViralTopics summarizes every category as a ready-made search query,
// ranked by total views. limit <= 0 uses the default.
func (s *Scorer) ViralTopics(limit int) (*models.ViralTopicsResponse, error) {
	if s.table == nil {
		return nil, dataset.ErrNotLoaded
	}
	defer func(start time.Time) {
		metrics.TrendingDuration.WithLabelValues("viral_topics").Observe(time.Since(start).Seconds())
	}(time.Now())

	if limit <= 0 {
		limit = s.config.DefaultLimit
	}

	groups := make(map[string][]*dataset.Record)
	for _, r := range s.table.All() {
		if r.Category == "" || strings.EqualFold(r.Category, "none") {
			continue
		}
		groups[r.Category] = append(groups[r.Category], r)
	}

	topics := make([]models.ViralTopic, 0, len(groups))
	for cat, recs := range groups {
		topics = append(topics, models.ViralTopic{
			Query:         cat,
			Category:      cat,
			VideoCount:    len(recs),
			TotalViews:    dataset.SumViews(recs),
			AvgEngagement: dataset.Round(dataset.AvgEngagement(recs), 4),
		})
	}

	sort.Slice(topics, func(i, j int) bool {
		if topics[i].TotalViews != topics[j].TotalViews {
			return topics[i].TotalViews > topics[j].TotalViews
		}
		return topics[i].Category < topics[j].Category
	})
	if limit < len(topics) {
		topics = topics[:limit]
	}

	return &models.ViralTopicsResponse{Topics: topics}, nil
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package trending computes share-based growth scores for categories,
// hashtags, and creators. Growth is the relative over-representation of
// an entity in the "recent" slice of the table versus the whole table,
// a proxy for "what's rising" that needs no true historical series.
package trending

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/metrics"
	"github.com/tomtom215/reelscope/internal/models"
	"github.com/tomtom215/reelscope/internal/textmatch"
)

// Scope values accepted by the scorer.
const (
	ScopeRecent = "recent"
	ScopeAll    = "all"
)

// ErrUnknownEntity is returned by Detail when no video matches the
// requested name.
var ErrUnknownEntity = errors.New("trending: unknown entity")

// defaultGrowthPct applies when an entity has no overall presence to
// compare against.
const defaultGrowthPct = 100.0

// Scorer computes trend rankings over the shared table. Safe for
// concurrent use; the random source behind the synthetic trend-line
// fallback is mutex-guarded.
type Scorer struct {
	config *Config
	logger zerolog.Logger
	table  *dataset.Table

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewScorer creates a trend scorer over the given table.
func NewScorer(cfg *Config, table *dataset.Table, logger zerolog.Logger) (*Scorer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Scorer{
		config: cfg,
		logger: logger.With().Str("component", "trending").Logger(),
		table:  table,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // jitter, not crypto
	}, nil
}

// entry pairs a wire-shaped trend entry with its numeric growth so the
// merged ranking does not have to re-parse its own formatting.
type entry struct {
	models.TrendEntry
	growth float64
}

// Now computes the merged trend ranking for the requested scope. An
// unknown scope falls back to "recent"; a category filter of "", "All",
// or "All categories" means no filter. limit <= 0 uses the default.
func (s *Scorer) Now(scope, category string, limit int) (*models.TrendingNowResponse, error) {
	if s.table == nil {
		return nil, dataset.ErrNotLoaded
	}
	defer func(start time.Time) {
		metrics.TrendingDuration.WithLabelValues("now").Observe(time.Since(start).Seconds())
	}(time.Now())

	if scope != ScopeAll {
		scope = ScopeRecent
	}
	if limit <= 0 {
		limit = s.config.DefaultLimit
	}

	working := s.table.All()
	filtered := !textmatch.IsNoFilter(category)
	if filtered {
		cat := textmatch.Normalize(category)
		working = filterRecords(working, func(r *dataset.Record) bool {
			return r.LCCategory == cat
		})
	}
	selected := working
	if scope == ScopeRecent {
		selected = s.recentSlice(working)
	}

	entries := s.scoreCategories(selected, working)
	entries = append(entries, s.scoreHashtags(selected, working)...)
	entries = append(entries, s.scoreCreators(selected, working)...)

	// The formatted growth string is the wire contract; rank by the
	// number parsed back out of it.
	sort.SliceStable(entries, func(i, j int) bool {
		gi, gj := parseGrowthPct(entries[i].GrowthPct), parseGrowthPct(entries[j].GrowthPct)
		if gi != gj {
			return gi > gj
		}
		if entries[i].Volume != entries[j].Volume {
			return entries[i].Volume > entries[j].Volume
		}
		return entries[i].Name < entries[j].Name
	})
	if limit < len(entries) {
		entries = entries[:limit]
	}

	trends := make([]models.TrendEntry, 0, len(entries))
	for _, e := range entries {
		metrics.TrendingEntriesScored.WithLabelValues(e.Type).Inc()
		trends = append(trends, e.TrendEntry)
	}

	resp := &models.TrendingNowResponse{Scope: scope, Trends: trends}
	if filtered {
		resp.Category = category
	}
	return resp, nil
}

// recentSlice returns the latest fraction of recs past the configured
// quantile, ordered by timestamp when available and id otherwise.
func (s *Scorer) recentSlice(recs []*dataset.Record) []*dataset.Record {
	if len(recs) == 0 {
		return nil
	}

	hasTS := false
	for _, r := range recs {
		if r.Timestamp != nil {
			hasTS = true
			break
		}
	}

	var sorted []*dataset.Record
	if hasTS {
		sorted = dataset.SortByTimestamp(recs)
	} else {
		sorted = make([]*dataset.Record, len(recs))
		copy(sorted, recs)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	}

	cut := int(float64(len(sorted)) * s.config.RecentQuantile)
	if cut >= len(sorted) {
		cut = len(sorted) - 1
	}
	return sorted[cut:]
}

// scoreCategories scores every distinct category in the selected scope.
func (s *Scorer) scoreCategories(selected, working []*dataset.Record) []entry {
	counts := make(map[string][]*dataset.Record)
	for _, r := range selected {
		if r.Category == "" || strings.EqualFold(r.Category, "none") {
			continue
		}
		counts[r.Category] = append(counts[r.Category], r)
	}

	var out []entry
	for cat, matching := range counts {
		c := cat
		overall := countRecords(working, func(r *dataset.Record) bool { return r.Category == c })
		growth := growthPct(len(matching), len(selected), overall, len(working))
		out = append(out, s.buildEntry(c, models.TrendTypeCategory, matching, growth))
	}
	return out
}

// scoreHashtags scores the most frequent in-scope tags, dropping
// one-offs.
func (s *Scorer) scoreHashtags(selected, working []*dataset.Record) []entry {
	selRows := dataset.ExplodeHashtags(selected)
	if len(selRows) == 0 {
		return nil
	}
	freq := make(map[string]int)
	matching := make(map[string][]*dataset.Record)
	for _, row := range selRows {
		freq[row.Tag]++
		matching[row.Tag] = append(matching[row.Tag], row.Rec)
	}

	candidates := topNByCount(freq, s.config.MaxHashtagCandidates)

	workRows := dataset.ExplodeHashtags(working)
	workFreq := make(map[string]int)
	for _, row := range workRows {
		workFreq[row.Tag]++
	}

	var out []entry
	for _, tag := range candidates {
		if freq[tag] < s.config.MinHashtagCount {
			continue
		}
		// Shares count exploded tag rows, so a duplicated tag within
		// one record weighs twice.
		growth := growthPct(freq[tag], len(selRows), workFreq[tag], len(workRows))
		out = append(out, s.buildEntry(tag, models.TrendTypeHashtag, dedupeRecords(matching[tag]), growth))
	}
	return out
}

// scoreCreators scores creators with enough in-scope videos.
func (s *Scorer) scoreCreators(selected, working []*dataset.Record) []entry {
	byCreator := make(map[string][]*dataset.Record)
	for _, r := range selected {
		if r.OwnerUsername == "" {
			continue
		}
		byCreator[r.OwnerUsername] = append(byCreator[r.OwnerUsername], r)
	}

	counts := make(map[string]int, len(byCreator))
	for creator, recs := range byCreator {
		counts[creator] = len(recs)
	}
	candidates := topNByCount(counts, s.config.MaxCreatorCandidates)

	var out []entry
	for _, creator := range candidates {
		matching := byCreator[creator]
		if len(matching) < s.config.MinCreatorVideos {
			continue
		}
		c := creator
		overall := countRecords(working, func(r *dataset.Record) bool { return r.OwnerUsername == c })
		growth := growthPct(len(matching), len(selected), overall, len(working))
		out = append(out, s.buildEntry(c, models.TrendTypeCreator, matching, growth))
	}
	return out
}

// buildEntry assembles one trend entry from an entity's matching records
// and its precomputed growth score.
func (s *Scorer) buildEntry(name, entityType string, matching []*dataset.Record, growth float64) entry {
	return entry{
		TrendEntry: models.TrendEntry{
			Name:          name,
			Type:          entityType,
			Volume:        len(matching),
			GrowthPct:     formatGrowthPct(growth),
			LastSeen:      lastSeen(matching),
			TotalViews:    dataset.SumViews(matching),
			AvgEngagement: dataset.Round(dataset.AvgEngagement(matching), 4),
			RelatedTag:    relatedTag(matching, strings.ToLower(name)),
			Timeseries:    s.timeseries(matching),
		},
		growth: growth,
	}
}

// growthPct computes the share-delta growth percentage. An entity with
// no overall presence gets the fixed default of 100%.
func growthPct(selectedCount, selectedTotal, overallCount, workingTotal int) float64 {
	if selectedTotal == 0 || workingTotal == 0 {
		return defaultGrowthPct
	}
	selectedShare := float64(selectedCount) / float64(selectedTotal)
	overallShare := float64(overallCount) / float64(workingTotal)
	if overallShare == 0 {
		return defaultGrowthPct
	}
	return 100 * (selectedShare - overallShare) / overallShare
}

// formatGrowthPct renders growth as a signed percentage string.
func formatGrowthPct(growth float64) string {
	if growth >= 0 {
		return fmt.Sprintf("+%.1f%%", growth)
	}
	return fmt.Sprintf("%.1f%%", growth)
}

// parseGrowthPct recovers the numeric growth from its wire form.
func parseGrowthPct(s string) float64 {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "+"), "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// lastSeen formats the newest matching timestamp as a date, empty when
// no record carries one.
func lastSeen(matching []*dataset.Record) string {
	var newest *time.Time
	for _, r := range matching {
		if r.Timestamp == nil {
			continue
		}
		if newest == nil || r.Timestamp.After(*newest) {
			newest = r.Timestamp
		}
	}
	if newest == nil {
		return ""
	}
	return newest.Format("2006-01-02")
}

// relatedTag returns the most frequent co-occurring hashtag among the
// matching records, excluding the entity's own name.
func relatedTag(matching []*dataset.Record, self string) string {
	freq := make(map[string]int)
	for _, row := range dataset.ExplodeHashtags(matching) {
		if row.Tag == self {
			continue
		}
		freq[row.Tag]++
	}
	tags := topNByCount(freq, 1)
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}

// timeseries builds the compact trend line: matching records ordered by
// timestamp, split into roughly equal contiguous chunks with the
// remainder folded into the last bucket. All-zero when the matching
// records carry no timestamps but the table does; synthetic jittered
// buckets when the table has no timestamps at all.
func (s *Scorer) timeseries(matching []*dataset.Record) []int {
	buckets := make([]int, s.config.TimeseriesBuckets)

	withTS := filterRecords(matching, func(r *dataset.Record) bool { return r.Timestamp != nil })
	if len(withTS) == 0 {
		if s.table != nil && s.table.HasTimestamps() {
			return buckets
		}
		return s.jitterBuckets(len(matching))
	}

	n := len(withTS)
	per := n / len(buckets)
	for i := range buckets {
		buckets[i] = per
	}
	buckets[len(buckets)-1] += n % len(buckets)
	return buckets
}

// jitterBuckets synthesizes a plausible trend line around the average
// bucket size. Deliberately non-deterministic in production; tests pin
// the seed.
func (s *Scorer) jitterBuckets(n int) []int {
	buckets := make([]int, s.config.TimeseriesBuckets)
	if n == 0 {
		return buckets
	}
	avg := n / len(buckets)
	if avg < 1 {
		avg = 1
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	for i := range buckets {
		jitter := s.rng.Intn(avg+1) - avg/2
		if v := avg + jitter; v > 0 {
			buckets[i] = v
		}
	}
	return buckets
}

// filterRecords returns the records matching pred, preserving order.
func filterRecords(recs []*dataset.Record, pred func(*dataset.Record) bool) []*dataset.Record {
	var out []*dataset.Record
	for _, r := range recs {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// countRecords counts the records matching pred.
func countRecords(recs []*dataset.Record, pred func(*dataset.Record) bool) int {
	n := 0
	for _, r := range recs {
		if pred(r) {
			n++
		}
	}
	return n
}

// dedupeRecords removes repeated records by id, first occurrence wins.
func dedupeRecords(recs []*dataset.Record) []*dataset.Record {
	seen := make(map[int64]struct{}, len(recs))
	var out []*dataset.Record
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

// topNByCount ranks map keys by count descending, key ascending on ties,
// and returns the first n.
func topNByCount(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n < len(keys) {
		keys = keys[:n]
	}
	return keys
}

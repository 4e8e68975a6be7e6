// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package explore builds the discovery response: an ordered list of
// titled, reasoned sections of video cards assembled by independent
// ranking strategies over the shared video table.
//
// Strategy order is a contract, not an implementation detail. Later
// strategies consult the set of ids placed by earlier ones, so the
// assembly sequence is always: category, creator, hashtag, text,
// semantic, spotlight (only when everything else came up empty), then
// more-from-category over the two dominant result categories.
package explore

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/metrics"
	"github.com/tomtom215/reelscope/internal/models"
	"github.com/tomtom215/reelscope/internal/textmatch"
)

// SemanticMatch is one nearest-neighbor hit from the embedding service.
type SemanticMatch struct {
	ID    int64
	Score float64
}

// SemanticSearcher retrieves videos related to a query by meaning rather
// than keyword overlap. Implementations may fail or be absent; the engine
// treats both as "skip the semantic section".
type SemanticSearcher interface {
	Search(ctx context.Context, query string, k int) ([]SemanticMatch, error)
}

// Engine builds explore sections. It is safe for concurrent use: the
// table is read-only and the only mutable state is the random source,
// which is guarded by a mutex.
type Engine struct {
	config *Config
	logger zerolog.Logger
	table  *dataset.Table

	// Optional semantic searcher; nil means the section is skipped.
	searcher SemanticSearcher

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates an explore engine over the given table.
func NewEngine(cfg *Config, table *dataset.Table, logger zerolog.Logger) (*Engine, error) {
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

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "explore").Logger(),
		table:  table,
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // variety sampling, not crypto
	}, nil
}

// SetSemanticSearcher wires the optional embedding-search client. Must be
// called before the engine starts serving requests.
func (e *Engine) SetSemanticSearcher(s SemanticSearcher) {
	e.searcher = s
}

// Explore runs every ranking strategy for the query and assembles the
// section list. rowsPerSection <= 0 falls back to the configured default.
// Strategies that find nothing are omitted; when all of them miss, the
// spotlight fallback guarantees a non-empty response.
func (e *Engine) Explore(ctx context.Context, query string, rowsPerSection int) (*models.ExploreResponse, error) {
	if e.table == nil {
		return nil, dataset.ErrNotLoaded
	}
	defer func(start time.Time) {
		metrics.ExploreDuration.Observe(time.Since(start).Seconds())
	}(time.Now())

	rows := rowsPerSection
	if rows <= 0 {
		rows = e.config.RowsPerSection
	}
	compactRows := rows
	if compactRows > e.config.CreatorRowCap {
		compactRows = e.config.CreatorRowCap
	}

	all := e.table.All()
	sections := []models.Section{}
	shown := make(map[int64]struct{})

	appendSection := func(sec *models.Section) {
		if sec == nil || len(sec.Items) == 0 {
			return
		}
		sections = append(sections, *sec)
		metrics.ExploreSectionsBuilt.WithLabelValues(sec.Key).Inc()
		for _, item := range sec.Items {
			shown[item.ID] = struct{}{}
		}
	}

	appendSection(e.sectionByCategory(all, query, rows))
	for _, sec := range e.sectionsByCreator(all, query, compactRows) {
		appendSection(&sec)
	}
	for _, sec := range e.sectionsByHashtag(all, query, compactRows) {
		appendSection(&sec)
	}
	appendSection(e.sectionByText(all, query, rows))
	appendSection(e.sectionSemantic(ctx, query, rows, shown))

	if len(sections) == 0 {
		e.logger.Debug().Str("query", query).Msg("no strategy matched, falling back to spotlight")
		appendSection(e.sectionSpotlight(all, rows))
	}

	for i := range sections {
		sections[i].Items = dedupeByID(sections[i].Items)
	}

	for _, cat := range dominantCategories(sections, 2) {
		appendSection(e.sectionMoreFromCategory(all, cat, rows, shown))
	}

	e.logger.Debug().
		Str("query", query).
		Int("sections", len(sections)).
		Msg("explore assembled")

	return &models.ExploreResponse{Query: query, Sections: sections}, nil
}

// sectionByCategory matches the query against category names, picks the
// matched category with the highest total view count, and returns its top
// rows by engagement.
func (e *Engine) sectionByCategory(recs []*dataset.Record, query string, rows int) *models.Section {
	ql := textmatch.Normalize(query)
	if ql == "" {
		return nil
	}
	hits := filterRecords(recs, func(r *dataset.Record) bool {
		return textmatch.Contains(r.LCCategory, ql)
	})
	if len(hits) == 0 {
		return nil
	}

	topCat := topGroup(hits, func(r *dataset.Record) string { return r.Category })
	subset := filterRecords(recs, func(r *dataset.Record) bool { return r.Category == topCat })
	top := dataset.TopK(subset, rows)
	if len(top) == 0 {
		return nil
	}

	return &models.Section{
		Key:    "category",
		Title:  fmt.Sprintf("Because you searched '%s'", query),
		Reason: fmt.Sprintf("Top in %s", topCat),
		Items:  dataset.Cards(top),
	}
}

// sectionsByCreator matches creator handles and emits one section per
// matched creator, ranked by the creator's total view count.
func (e *Engine) sectionsByCreator(recs []*dataset.Record, query string, rows int) []models.Section {
	ql := textmatch.Normalize(query)
	if ql == "" || e.config.MaxCreatorSections == 0 {
		return nil
	}
	cand := filterRecords(recs, func(r *dataset.Record) bool {
		return textmatch.Contains(r.LCCreator, ql)
	})
	if len(cand) == 0 {
		return nil
	}

	creators := topGroups(cand, e.config.MaxCreatorSections, func(r *dataset.Record) string {
		return r.OwnerUsername
	})

	var out []models.Section
	for _, creator := range creators {
		c := creator
		vids := filterRecords(recs, func(r *dataset.Record) bool { return r.OwnerUsername == c })
		top := dataset.TopK(vids, rows)
		if len(top) == 0 {
			continue
		}
		out = append(out, models.Section{
			Key:    "creator",
			Title:  fmt.Sprintf("Popular from @%s", c),
			Reason: "Creator match",
			Items:  dataset.Cards(top),
		})
	}
	return out
}

// sectionsByHashtag matches against exploded hashtag rows and emits one
// section per matched tag. Rather than strictly taking the top rows, it
// samples them from a pool twice that size so repeated identical queries
// do not return identical rankings.
func (e *Engine) sectionsByHashtag(recs []*dataset.Record, query string, rows int) []models.Section {
	ql := textmatch.Normalize(query)
	if ql == "" || e.config.MaxHashtagSections == 0 {
		return nil
	}
	exploded := dataset.ExplodeHashtags(recs)

	var hits []dataset.TagRow
	for _, row := range exploded {
		if textmatch.Contains(row.Tag, ql) {
			hits = append(hits, row)
		}
	}
	if len(hits) == 0 {
		return nil
	}

	// Rank candidate tags by the summed view count of their rows.
	sums := make(map[string]int64)
	for _, row := range hits {
		sums[row.Tag] += row.Rec.ViewCount
	}
	tags := topNByValue(sums, e.config.MaxHashtagSections)

	var out []models.Section
	for _, tag := range tags {
		var vids []*dataset.Record
		for _, row := range exploded {
			if row.Tag == tag {
				vids = append(vids, row.Rec)
			}
		}
		pool := dataset.TopK(vids, rows*2)
		picked := e.sample(pool, rows)
		if len(picked) == 0 {
			continue
		}
		out = append(out, models.Section{
			Key:    "hashtag",
			Title:  fmt.Sprintf("Trending with #%s", tag),
			Reason: "Hashtag match",
			Items:  dataset.Cards(picked),
		})
	}
	return out
}

// sectionByText substring-matches captions, transcripts, and full text,
// then samples the result rows from a double-size top pool.
func (e *Engine) sectionByText(recs []*dataset.Record, query string, rows int) *models.Section {
	ql := textmatch.Normalize(query)
	if ql == "" {
		return nil
	}
	hits := filterRecords(recs, func(r *dataset.Record) bool {
		return textmatch.MatchesAny(ql, r.LCCaption, r.LCText, r.LCFullText)
	})
	if len(hits) == 0 {
		return nil
	}

	pool := dataset.TopK(hits, rows*2)
	picked := e.sample(pool, rows)
	if len(picked) == 0 {
		return nil
	}

	return &models.Section{
		Key:    "similar",
		Title:  fmt.Sprintf("Similar to %q", query),
		Reason: "Text match",
		Items:  dataset.Cards(picked),
	}
}

// sectionSemantic asks the embedding service for nearest neighbors and
// keeps the first rows not already shown by earlier sections. Any failure
// degrades to an omitted section, never an error.
func (e *Engine) sectionSemantic(ctx context.Context, query string, rows int, shown map[int64]struct{}) *models.Section {
	if e.searcher == nil {
		return nil
	}
	matches, err := e.searcher.Search(ctx, query, rows*3)
	if err != nil {
		e.logger.Warn().Err(err).Str("query", query).Msg("semantic search unavailable, skipping section")
		return nil
	}

	var items []models.VideoCard
	for _, m := range matches {
		if len(items) >= rows {
			break
		}
		if _, dup := shown[m.ID]; dup {
			continue
		}
		rec := e.table.ByID(m.ID)
		if rec == nil {
			continue
		}
		card := dataset.Card(rec)
		score := dataset.Round(dataset.ClampFloat(m.Score), 4)
		card.SimilarityScore = &score
		items = append(items, card)
	}
	if len(items) == 0 {
		return nil
	}

	return &models.Section{
		Key:    "semantic",
		Title:  fmt.Sprintf("Related to %q", query),
		Reason: "Semantic match",
		Items:  items,
	}
}

// sectionSpotlight is the fallback when nothing matched: a shuffled
// sample of the highest-engagement videos overall.
func (e *Engine) sectionSpotlight(recs []*dataset.Record, rows int) *models.Section {
	pool := dataset.TopK(recs, rows*3)
	picked := e.sample(pool, rows)
	if len(picked) == 0 {
		return nil
	}
	return &models.Section{
		Key:    "spotlight",
		Title:  "Now Trending",
		Reason: "High engagement overall",
		Items:  dataset.Cards(picked),
	}
}

// sectionMoreFromCategory adds not-yet-shown videos from a dominant
// result category. Skipped when fewer than three eligible videos remain.
func (e *Engine) sectionMoreFromCategory(recs []*dataset.Record, category string, rows int, shown map[int64]struct{}) *models.Section {
	if category == "" || strings.EqualFold(category, "none") {
		return nil
	}
	eligible := filterRecords(recs, func(r *dataset.Record) bool {
		if r.Category != category {
			return false
		}
		_, dup := shown[r.ID]
		return !dup
	})
	if len(eligible) < 3 {
		return nil
	}

	pool := dataset.TopK(eligible, rows*2)
	picked := e.sample(pool, rows)
	if len(picked) == 0 {
		return nil
	}

	return &models.Section{
		Key:    "more_from_category",
		Title:  fmt.Sprintf("More videos about %s", category),
		Reason: fmt.Sprintf("Popular in %s", category),
		Items:  dataset.Cards(picked),
	}
}

// sample draws n records from recs without replacement under the rng lock.
func (e *Engine) sample(recs []*dataset.Record, n int) []*dataset.Record {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return dataset.SampleN(e.rng, recs, n)
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

// topGroup returns the group key with the highest summed view count.
func topGroup(recs []*dataset.Record, key func(*dataset.Record) string) string {
	sums := make(map[string]int64)
	for _, r := range recs {
		sums[key(r)] += r.ViewCount
	}
	groups := topNByValue(sums, 1)
	if len(groups) == 0 {
		return ""
	}
	return groups[0]
}

// topGroups returns up to n group keys ranked by summed view count.
func topGroups(recs []*dataset.Record, n int, key func(*dataset.Record) string) []string {
	sums := make(map[string]int64)
	for _, r := range recs {
		sums[key(r)] += r.ViewCount
	}
	return topNByValue(sums, n)
}

// topNByValue ranks map keys by value descending, key ascending on ties
// so the ranking is deterministic, and returns the first n.
func topNByValue(sums map[string]int64, n int) []string {
	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if sums[keys[i]] != sums[keys[j]] {
			return sums[keys[i]] > sums[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n < len(keys) {
		keys = keys[:n]
	}
	return keys
}

// dedupeByID removes repeated ids within a section, first occurrence wins.
func dedupeByID(items []models.VideoCard) []models.VideoCard {
	seen := make(map[int64]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out
}

// dominantCategories counts category occurrences across all built
// sections and returns the top n, most frequent first.
func dominantCategories(sections []models.Section, n int) []string {
	counts := make(map[string]int64)
	for _, sec := range sections {
		for _, item := range sec.Items {
			if item.Category == "" || strings.EqualFold(item.Category, "none") {
				continue
			}
			counts[item.Category]++
		}
	}
	return topNByValue(counts, n)
}

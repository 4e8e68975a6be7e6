// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package suggest serves search-bar suggestions from three sources:
// topic names, high-engagement hashtags, and two-word phrases drawn from
// per-topic keyword lists extracted once at startup.
package suggest

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/models"
	"github.com/tomtom215/reelscope/internal/textmatch"
)

var wordPattern = regexp.MustCompile(`\w{3,}`)

// Engine answers suggestion queries. Keyword lists are computed once at
// construction and read-only afterwards; the only mutable state is the
// random source.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// topicNames is the sorted topic-name list; topicKeywords maps a
	// topic name to its ordered keyword list.
	topicNames    []string
	topicKeywords map[string][]string
	hashtagStats  []dataset.HashtagStat

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine extracts topic keywords from the table and returns a ready
// suggestion engine. topics maps topic id to topic name; hashtagStats
// may be nil when the artifact is absent.
func NewEngine(cfg *Config, table *dataset.Table, topics map[string]string, hashtagStats []dataset.HashtagStat, logger zerolog.Logger) (*Engine, error) {
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

	e := &Engine{
		config:        cfg,
		logger:        logger.With().Str("component", "suggest").Logger(),
		topicKeywords: extractTopicKeywords(table, topics, cfg.TopKeywords, cfg.MinKeywordLength),
		hashtagStats:  sortedByEngagement(hashtagStats),
		rng:           rand.New(rand.NewSource(seed)), //nolint:gosec // suggestion shuffling
	}
	for name := range e.topicKeywords {
		e.topicNames = append(e.topicNames, name)
	}
	sort.Strings(e.topicNames)

	e.logger.Info().
		Int("topics", len(e.topicNames)).
		Int("hashtags", len(e.hashtagStats)).
		Msg("suggestion engine ready")
	return e, nil
}

// Suggestions returns suggestions matching the query, deduplicated by
// text. limit <= 0 uses the configured default.
func (e *Engine) Suggestions(query string, limit int) *models.SuggestionsResponse {
	if limit <= 0 {
		limit = e.config.MaxSuggestions
	}
	q := textmatch.Normalize(query)

	var suggestions []models.Suggestion
	if q != "" {
		// Topic names containing the query.
		for _, name := range e.topicNames {
			if strings.Contains(strings.ToLower(name), q) && textmatch.IsInterestingQuery(name, e.config.MinKeywordLength) {
				suggestions = append(suggestions, models.Suggestion{
					Text: name,
					Type: models.SuggestionTypeCategory,
				})
			}
		}

		// High-engagement hashtags containing the query.
		matched := 0
		for _, stat := range e.hashtagStats {
			if matched >= 5 {
				break
			}
			if !strings.Contains(strings.ToLower(stat.Tag), q) {
				continue
			}
			matched++
			if textmatch.IsInterestingQuery(stat.Tag, 3) {
				suggestions = append(suggestions, models.Suggestion{
					Text: "#" + stat.Tag,
					Type: models.SuggestionTypeHashtag,
				})
			}
		}

		// Adjacent-keyword phrases from topics whose vocabulary
		// contains the query.
		for _, name := range e.topicNames {
			keywords := e.topicKeywords[name]
			for i, kw := range keywords {
				if !strings.Contains(kw, q) {
					continue
				}
				if i < len(keywords)-1 {
					phrase := kw + " " + keywords[i+1]
					if textmatch.IsInterestingQuery(phrase, e.config.MinKeywordLength) {
						suggestions = append(suggestions, models.Suggestion{
							Text: phrase,
							Type: models.SuggestionTypeTopicPhrase,
						})
					}
				}
				break
			}
		}
	}

	seen := make(map[string]struct{}, len(suggestions))
	unique := make([]models.Suggestion, 0, limit)
	for _, s := range suggestions {
		if _, dup := seen[s.Text]; dup {
			continue
		}
		seen[s.Text] = struct{}{}
		unique = append(unique, s)
		if len(unique) >= limit {
			break
		}
	}

	return &models.SuggestionsResponse{Query: query, Suggestions: unique}
}

// RandomSuggestions returns a shuffled mix of per-topic two-word phrases
// and top hashtags. limit <= 0 uses the configured default.
func (e *Engine) RandomSuggestions(limit int) *models.SuggestionsResponse {
	if limit <= 0 {
		limit = e.config.RandomCount
	}

	var all []models.Suggestion
	e.rngMu.Lock()
	for _, name := range e.topicNames {
		keywords := e.topicKeywords[name]
		if len(keywords) < 2 {
			continue
		}
		start := e.rng.Intn(len(keywords) - 1)
		phrase := keywords[start] + " " + keywords[start+1]
		if textmatch.IsInterestingQuery(phrase, e.config.MinKeywordLength) {
			all = append(all, models.Suggestion{
				Text:      phrase,
				Type:      models.SuggestionTypeTopicPhrase,
				TopicName: name,
			})
		}
	}

	top := e.hashtagStats
	if len(top) > 15 {
		top = top[:15]
	}
	for _, stat := range top {
		if textmatch.IsInterestingQuery(stat.Tag, 3) {
			all = append(all, models.Suggestion{
				Text: "#" + stat.Tag,
				Type: models.SuggestionTypeHashtag,
			})
		}
	}

	e.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	e.rngMu.Unlock()

	if limit < len(all) {
		all = all[:limit]
	}
	return &models.SuggestionsResponse{Suggestions: all}
}

// extractTopicKeywords builds per-topic keyword lists from the full text
// of the topic's videos: frequent words above the length floor that are
// not stopwords. Topics with fewer than two keywords are dropped, as is
// the outlier topic.
func extractTopicKeywords(table *dataset.Table, topics map[string]string, topN, minLen int) map[string][]string {
	out := make(map[string][]string)
	if table == nil {
		return out
	}

	for topicID, topicName := range topics {
		if topicID == "-1" || strings.Contains(strings.ToLower(topicName), "outlier") {
			continue
		}
		name := topicName
		videos := table.Filter(func(r *dataset.Record) bool { return r.TopicName == name })
		if len(videos) == 0 {
			continue
		}

		counts := make(map[string]int)
		var order []string
		for _, r := range videos {
			for _, w := range wordPattern.FindAllString(r.LCFullText, -1) {
				if len(w) < minLen || textmatch.IsStopword(w) {
					continue
				}
				if _, ok := counts[w]; !ok {
					order = append(order, w)
				}
				counts[w]++
			}
		}

		// Rank by frequency, first occurrence breaking ties so the
		// ordering is stable for a given table.
		firstSeen := make(map[string]int, len(order))
		for i, w := range order {
			firstSeen[w] = i
		}
		sort.SliceStable(order, func(i, j int) bool {
			if counts[order[i]] != counts[order[j]] {
				return counts[order[i]] > counts[order[j]]
			}
			return firstSeen[order[i]] < firstSeen[order[j]]
		})
		if topN < len(order) {
			order = order[:topN]
		}
		if len(order) >= 2 {
			out[name] = order
		}
	}
	return out
}

// sortedByEngagement orders hashtag stats by mean engagement descending.
func sortedByEngagement(stats []dataset.HashtagStat) []dataset.HashtagStat {
	sorted := make([]dataset.HashtagStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MeanEngagement > sorted[j].MeanEngagement
	})
	return sorted
}

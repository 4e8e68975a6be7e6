// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package dataset

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
)

// ErrNotLoaded is returned by entry points when the shared table was never
// loaded. It is surfaced to callers rather than retried.
var ErrNotLoaded = errors.New("dataset: video table not loaded")

// Table holds all video records plus derived columns. It is built once at
// process start and treated as immutable thereafter: request handlers work
// on []*Record views and never mutate shared state.
type Table struct {
	records []Record
	derived bool
}

// New creates a table over the given records and computes derived columns.
func New(records []Record) *Table {
	t := &Table{records: records}
	t.EnsureDerived()
	return t
}

// EnsureDerived computes hashtag lists, lowercase text fields, and numeric
// clamps for every record. It is idempotent: derived fields are assigned
// from source fields each time, never accumulated, so repeated calls yield
// identical state.
func (t *Table) EnsureDerived() {
	for i := range t.records {
		r := &t.records[i]
		r.Caption = CleanText(r.Caption)
		r.Text = CleanText(r.Text)
		r.FullText = CleanText(r.FullText)
		r.OwnerUsername = CleanText(r.OwnerUsername)
		r.Category = CleanText(r.Category)
		r.ViewCount = ClampInt64(float64(r.ViewCount))
		r.LikeCount = ClampInt64(float64(r.LikeCount))
		r.EngagementRate = ClampFloat(r.EngagementRate)
		r.Hashtags = ParseHashtags(r.HashtagsRaw)
		r.LCCaption = strings.ToLower(r.Caption)
		r.LCText = strings.ToLower(r.Text)
		r.LCFullText = strings.ToLower(r.FullText)
		r.LCCreator = strings.ToLower(r.OwnerUsername)
		r.LCCategory = strings.ToLower(r.Category)
	}
	t.derived = true
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// All returns a view of every record. The returned slice is freshly
// allocated but the pointed-to records are shared: callers must not mutate
// them.
func (t *Table) All() []*Record {
	out := make([]*Record, len(t.records))
	for i := range t.records {
		out[i] = &t.records[i]
	}
	return out
}

// Filter returns the records matching pred, preserving table order.
func (t *Table) Filter(pred func(*Record) bool) []*Record {
	var out []*Record
	for i := range t.records {
		if pred(&t.records[i]) {
			out = append(out, &t.records[i])
		}
	}
	return out
}

// ByID returns the record with the given id, or nil.
func (t *Table) ByID(id int64) *Record {
	for i := range t.records {
		if t.records[i].ID == id {
			return &t.records[i]
		}
	}
	return nil
}

// TopK stable-sorts a copy of recs by engagement rate then view count, both
// descending, and returns the first k. Ties keep their original order so
// repeated calls over the same input are deterministic.
func TopK(recs []*Record, k int) []*Record {
	sorted := make([]*Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EngagementRate != sorted[j].EngagementRate {
			return sorted[i].EngagementRate > sorted[j].EngagementRate
		}
		return sorted[i].ViewCount > sorted[j].ViewCount
	})
	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// SampleN returns n records sampled without replacement from recs, in
// shuffled order. This is the variety-injection primitive: rather than
// always returning an identical top-k list, ranking strategies sample from
// a larger top pool. The random source is injected so tests can pin a seed.
func SampleN(rng *rand.Rand, recs []*Record, n int) []*Record {
	shuffled := make([]*Record, len(recs))
	copy(shuffled, recs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// SumViews returns the total view count across recs.
func SumViews(recs []*Record) int64 {
	var total int64
	for _, r := range recs {
		total += r.ViewCount
	}
	return total
}

// AvgEngagement returns the mean engagement rate across recs, 0 when empty.
func AvgEngagement(recs []*Record) float64 {
	if len(recs) == 0 {
		return 0
	}
	var total float64
	for _, r := range recs {
		total += r.EngagementRate
	}
	return total / float64(len(recs))
}

// TagRow is one row of an exploded hashtag view: a single (tag, record)
// pair. A record with n hashtags contributes n rows, duplicates included.
type TagRow struct {
	Tag string // lowercased
	Rec *Record
}

// ExplodeHashtags flattens the hashtag lists of recs into one row per tag
// occurrence. Duplicate tags within a record are preserved so frequency
// counts weight them accordingly.
func ExplodeHashtags(recs []*Record) []TagRow {
	var rows []TagRow
	for _, r := range recs {
		for _, tag := range r.Hashtags {
			rows = append(rows, TagRow{Tag: strings.ToLower(tag), Rec: r})
		}
	}
	return rows
}

// SortByTimestamp returns a copy of recs stable-sorted by ascending
// timestamp. Records without a timestamp sort first, keeping table order
// among themselves.
func SortByTimestamp(recs []*Record) []*Record {
	sorted := make([]*Record, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].Timestamp, sorted[j].Timestamp
		switch {
		case ti == nil:
			return tj != nil
		case tj == nil:
			return false
		default:
			return ti.Before(*tj)
		}
	})
	return sorted
}

// HasTimestamps reports whether any record in the table carries a timestamp.
func (t *Table) HasTimestamps() bool {
	for i := range t.records {
		if t.records[i].Timestamp != nil {
			return true
		}
	}
	return false
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("/api/v1/explore", "GET", "200"))
	RecordAPIRequest("/api/v1/explore", "GET", 200, 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("/api/v1/explore", "GET", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestCacheCounters(t *testing.T) {
	before := testutil.ToFloat64(CacheHits.WithLabelValues("explore"))
	RecordCacheHit("explore")
	RecordCacheMiss("explore")
	RecordCacheEviction("explore", "expired")
	after := testutil.ToFloat64(CacheHits.WithLabelValues("explore"))
	if after != before+1 {
		t.Errorf("hits = %v, want %v", after, before+1)
	}

	SetCacheEntries("explore", 7)
	if got := testutil.ToFloat64(CacheEntries.WithLabelValues("explore")); got != 7 {
		t.Errorf("entries gauge = %v, want 7", got)
	}
}

func TestSemanticRequestOutcomes(t *testing.T) {
	before := testutil.ToFloat64(SemanticRequests.WithLabelValues("failure"))
	RecordSemanticRequest("failure", 0)
	after := testutil.ToFloat64(SemanticRequests.WithLabelValues("failure"))
	if after != before+1 {
		t.Errorf("failure counter = %v, want %v", after, before+1)
	}
}

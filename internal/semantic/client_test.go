// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package semantic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{URL: srv.URL, Timeout: time.Second, TopK: 10}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query != "beauty" || req.K != 7 {
			t.Errorf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":42,"score":0.91},{"id":7,"score":0.85}]}`)) //nolint:errcheck
	})

	matches, err := c.Search(context.Background(), "beauty", 7)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != 42 || matches[0].Score != 0.91 {
		t.Errorf("matches = %+v", matches)
	}
}

func TestSearchDefaultsK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
		if req.K != 10 {
			t.Errorf("K = %d, want configured default 10", req.K)
		}
		w.Write([]byte(`{"results":[]}`)) //nolint:errcheck
	})

	if _, err := c.Search(context.Background(), "q", 0); err != nil {
		t.Fatalf("Search: %v", err)
	}
}

func TestSearchServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := c.Search(context.Background(), "q", 5); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestNewClientRequiresURL(t *testing.T) {
	if _, err := NewClient(Config{}, zerolog.Nop()); err == nil {
		t.Error("expected error for missing URL")
	}
}

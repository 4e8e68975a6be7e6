// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package semantic is the client for the external embedding-search
// service. The service owns the vector index and the encoder; this side
// only ships queries and maps neighbor ids back onto the video table.
//
// The client wraps every call in a circuit breaker so a slow or dead
// service degrades explore responses (the semantic section is skipped)
// instead of stalling them.
package semantic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelscope/internal/explore"
	"github.com/tomtom215/reelscope/internal/metrics"
)

// Config holds the embedding service connection settings.
type Config struct {
	// URL is the service base URL.
	URL string

	// Timeout bounds each search request.
	Timeout time.Duration

	// TopK is the default neighbor count when the caller passes k <= 0.
	TopK int
}

// Client calls the embedding service. Safe for concurrent use.
type Client struct {
	baseURL string
	topK    int
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]explore.SemanticMatch]
	logger  zerolog.Logger
}

// searchRequest is the wire shape of a search call.
type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// searchResponse is the wire shape of a search result.
type searchResponse struct {
	Results []struct {
		ID    int64   `json:"id"`
		Score float64 `json:"score"`
	} `json:"results"`
}

// NewClient creates an embedding-search client.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("semantic: url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 30
	}

	log := logger.With().Str("component", "semantic").Logger()
	cbName := "semantic-search"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]explore.SemanticMatch](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("semantic circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Client{
		baseURL: cfg.URL,
		topK:    topK,
		http:    &http.Client{Timeout: timeout},
		cb:      cb,
		logger:  log,
	}, nil
}

// Search returns up to k nearest neighbors for the query. Rejections
// from an open breaker and transport failures surface as errors; the
// explore engine turns both into an omitted section.
func (c *Client) Search(ctx context.Context, query string, k int) ([]explore.SemanticMatch, error) {
	if k <= 0 {
		k = c.topK
	}

	start := time.Now()
	matches, err := c.cb.Execute(func() ([]explore.SemanticMatch, error) {
		return c.doSearch(ctx, query, k)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordSemanticRequest("rejected", 0)
		} else {
			metrics.RecordSemanticRequest("failure", 0)
		}
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	metrics.RecordSemanticRequest("success", time.Since(start))
	return matches, nil
}

// doSearch performs one HTTP round trip.
func (c *Client) doSearch(ctx context.Context, query string, k int) ([]explore.SemanticMatch, error) {
	body, err := json.Marshal(searchRequest{Query: query, K: k})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	matches := make([]explore.SemanticMatch, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		matches = append(matches, explore.SemanticMatch{ID: r.ID, Score: r.Score})
	}
	return matches, nil
}

// stateToFloat maps breaker states onto the gauge scale.
func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

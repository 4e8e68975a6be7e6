// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Reelscope serves discovery feeds, trending analytics, and search
// suggestions over a pre-computed short-form video dataset.
//
// The dataset is loaded once at startup from parquet/CSV/JSON artifacts
// (via an in-memory DuckDB instance) and held immutable in memory; every
// endpoint is a pure read over it. Configuration is layered: built-in
// defaults, then an optional YAML file (CONFIG_PATH or ./config.yaml),
// then environment variables.
//
// # Quick start
//
//	DATA_VIDEOS_PATH=/data/videos.parquet reelscope
//
// Docker:
//
//	docker run -d \
//	  -e DATA_VIDEOS_PATH=/data/videos.parquet \
//	  -v /srv/reelscope:/data \
//	  -p 8080:8080 \
//	  ghcr.io/tomtom215/reelscope
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelscope/internal/api"
	"github.com/tomtom215/reelscope/internal/cache"
	"github.com/tomtom215/reelscope/internal/config"
	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/events"
	"github.com/tomtom215/reelscope/internal/explore"
	"github.com/tomtom215/reelscope/internal/logging"
	"github.com/tomtom215/reelscope/internal/semantic"
	"github.com/tomtom215/reelscope/internal/suggest"
	"github.com/tomtom215/reelscope/internal/trending"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("videos_path", cfg.Data.VideosPath).
		Msg("Starting Reelscope")

	watchLogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	artifacts, err := dataset.Load(ctx, dataset.LoadOptions{
		VideosPath:       cfg.Data.VideosPath,
		TopicsPath:       cfg.Data.TopicsPath,
		DocTopicsPath:    cfg.Data.DocTopicsPath,
		HashtagStatsPath: cfg.Data.HashtagStatsPath,
		VidlinkMapPath:   cfg.Data.VidlinkMapPath,
		EventsPath:       cfg.Data.EventsPath,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}
	logging.Info().
		Int("videos", artifacts.Table.Len()).
		Int("topics", len(artifacts.Topics)).
		Int("events", len(artifacts.Events)).
		Msg("Dataset loaded")

	handler, err := buildHandler(cfg, artifacts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize engines")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(cfg, handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  cfg.Server.Timeout * 2,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Server stopped")
}

// watchLogLevel hot-reloads the log level when the config file changes.
// The dataset and engines are immutable after startup, so the log level
// is the only setting worth reloading live.
func watchLogLevel() {
	path := config.FoundConfigFile()
	if path == "" {
		return
	}

	err := config.WatchConfigFile(path, func() {
		fresh, err := config.Load()
		if err != nil {
			logging.Warn().Err(err).Msg("Ignoring invalid config file change")
			return
		}
		logging.SetLevelString(fresh.Logging.Level)
		logging.Info().Str("level", fresh.Logging.Level).Msg("Log level reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watching unavailable")
		return
	}
	logging.Info().Str("path", path).Msg("Watching config file for log level changes")
}

// buildHandler constructs every engine over the loaded dataset and wires
// them into the API handler.
func buildHandler(cfg *config.Config, artifacts *dataset.Artifacts) (*api.Handler, error) {
	logger := logging.Logger()

	exploreCfg := explore.DefaultConfig()
	exploreCfg.RowsPerSection = cfg.Explore.RowsPerSection
	exploreCfg.MaxCreatorSections = cfg.Explore.MaxCreatorSections
	exploreCfg.MaxHashtagSections = cfg.Explore.MaxHashtagSections
	exploreCfg.CreatorRowCap = cfg.Explore.CreatorRowCap
	exploreCfg.Seed = cfg.Explore.Seed

	exploreEng, err := explore.NewEngine(exploreCfg, artifacts.Table, logger)
	if err != nil {
		return nil, fmt.Errorf("explore engine: %w", err)
	}

	if cfg.Semantic.Enabled {
		client, err := semantic.NewClient(semantic.Config{
			URL:     cfg.Semantic.URL,
			Timeout: cfg.Semantic.Timeout,
			TopK:    cfg.Semantic.TopK,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("semantic client: %w", err)
		}
		exploreEng.SetSemanticSearcher(client)
		logging.Info().Str("url", cfg.Semantic.URL).Msg("Semantic search enabled")
	}

	trendingCfg := trending.DefaultConfig()
	trendingCfg.RecentQuantile = cfg.Trending.RecentQuantile
	trendingCfg.MaxHashtagCandidates = cfg.Trending.MaxHashtagCandidates
	trendingCfg.MinHashtagCount = cfg.Trending.MinHashtagCount
	trendingCfg.MinCreatorVideos = cfg.Trending.MinCreatorVideos
	trendingCfg.MaxCreatorCandidates = cfg.Trending.MaxCreatorCandidates
	trendingCfg.TimeseriesBuckets = cfg.Trending.TimeseriesBuckets
	trendingCfg.DefaultLimit = cfg.Trending.DefaultLimit
	trendingCfg.DetailSampleSize = cfg.Trending.DetailSampleSize

	trendingEng, err := trending.NewScorer(trendingCfg, artifacts.Table, logger)
	if err != nil {
		return nil, fmt.Errorf("trending scorer: %w", err)
	}

	suggestCfg := suggest.DefaultConfig()
	suggestCfg.MaxSuggestions = cfg.Suggest.MaxSuggestions
	suggestCfg.RandomCount = cfg.Suggest.RandomCount
	suggestCfg.MinKeywordLength = cfg.Suggest.MinKeywordLength

	suggestEng, err := suggest.NewEngine(suggestCfg, artifacts.Table, artifacts.Topics, artifacts.HashtagStats, logger)
	if err != nil {
		return nil, fmt.Errorf("suggest engine: %w", err)
	}

	eventsSvc := events.NewService(artifacts.Table, artifacts.Events, logger)

	var respCache *cache.Cache
	if cfg.Cache.Enabled {
		respCache = cache.New("api", cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}

	return api.NewHandler(api.HandlerOptions{
		Config:   cfg,
		Table:    artifacts.Table,
		Explore:  exploreEng,
		Trending: trendingEng,
		Suggest:  suggestEng,
		Events:   eventsSvc,
		Cache:    respCache,
	}), nil
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// healthStatus is the payload of GET /api/v1/health.
type healthStatus struct {
	Status        string `json:"status"`
	VideosLoaded  int    `json:"videos_loaded"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Environment   string `json:"environment"`
}

// Health handles GET /api/v1/health with a dataset summary. The service
// reports degraded (but still 200) when the dataset is empty, since the
// process itself is healthy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	videos := 0
	if h.table != nil {
		videos = h.table.Len()
	}
	if videos == 0 {
		status = "degraded"
	}

	respondSuccess(w, r, healthStatus{
		Status:        status,
		VideosLoaded:  videos,
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Environment:   h.cfg.Server.Environment,
	}, 0, false)
}

// HealthLive handles GET /api/v1/health/live: process liveness only.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// HealthReady handles GET /api/v1/health/ready: readiness requires the
// dataset to be loaded.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.table == nil || h.table.Len() == 0 {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable,
			"The video dataset is not available", nil)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelscope/internal/dataset"
	"github.com/tomtom215/reelscope/internal/events"
	"github.com/tomtom215/reelscope/internal/logging"
	"github.com/tomtom215/reelscope/internal/models"
	"github.com/tomtom215/reelscope/internal/trending"
	"github.com/tomtom215/reelscope/internal/validation"
)

// Error codes for API responses.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeDatasetUnavailable = "DATASET_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// respondSuccess writes a 200 response in the standard envelope. queryTime
// is the engine execution time; zero when the payload came from cache.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, queryTime time.Duration, fromCache bool) {
	writeJSON(w, r, http.StatusOK, models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
			Cached:      fromCache,
		},
	})
}

// respondError writes an error response in the standard envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	writeJSON(w, r, status, models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}

// respondValidationError writes a 400 with the translated field errors.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
}

// respondEngineError maps engine errors onto HTTP statuses: a dataset
// that never loaded is 503, unknown entities and categories are 404,
// anything else is an opaque 500.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dataset.ErrNotLoaded):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeDatasetUnavailable,
			"The video dataset is not available", nil)
	case errors.Is(err, trending.ErrUnknownEntity), errors.Is(err, events.ErrUnknownCategory):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("Unhandled engine error")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal,
			"An internal error occurred", nil)
	}
}

// writeJSON serializes the envelope with goccy/go-json.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload models.APIResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode response")
	}
}

// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelscope/internal/validation"
)

// Explore handles GET /api/v1/explore. It assembles the personalized
// section feed for the given query; a blank query yields the spotlight
// feed. The section row cap is `rows_per_section` (`rows` is accepted
// as a short alias).
//
// Explore is exempt from the response cache: the engine's variety
// sampling is deliberately non-deterministic, and memoizing the payload
// would pin one shuffle for the whole cache TTL.
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	rows := parseIntParam(r, "rows_per_section")
	if rows == 0 {
		rows = parseIntParam(r, "rows")
	}

	params := ExploreParams{
		Query: stringParam(r, "q"),
		Rows:  rows,
	}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	start := time.Now()
	resp, err := h.explore.Explore(r.Context(), params.Query, params.Rows)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	elapsed := time.Since(start)

	h.logger.Debug().
		Str("query", params.Query).
		Int("sections", len(resp.Sections)).
		Dur("elapsed", elapsed).
		Msg("Explore feed built")

	respondSuccess(w, r, resp, elapsed, false)
}

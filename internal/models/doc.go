// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

// Package models defines the JSON-shaped response contracts exposed by the
// Reelscope HTTP API: the APIResponse envelope, video cards and sections,
// trend entries, search suggestions, and event summaries.
//
// Types here are pure data. Construction and defensive coercion of cards
// from raw records lives in the dataset package; ranking lives in the
// explore and trending packages.
package models

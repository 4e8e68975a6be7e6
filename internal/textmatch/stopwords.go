// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package textmatch

import (
	"strings"
	"unicode"
)

// stopwords covers Indonesian and English function words plus common filler
// terms that make poor search suggestions. The dataset is predominantly
// Indonesian-language short-form video captions.
var stopwords = map[string]struct{}{}

//nolint:gochecknoinits // builds the stopword set from the word list once
func init() {
	for _, w := range strings.Fields(stopwordList) {
		stopwords[w] = struct{}{}
	}
}

const stopwordList = `
dan atau yang ini itu di ke dari untuk pada dengan adalah akan telah sudah
juga tidak bisa sangat lebih ada hanya oleh saya kamu dia mereka kami kita
nya mu ku se ter paling sekali banget aja sih kok deh dong lho yuk guys gak
ga engga nggak udah udh dah nih tuh
the a an and or but in on at to for of with is are was were be been have has
had do does did will would should can could may might must shall about into
through during before after above below between under again further then
once here there when where why how all both each few more most other some
such only own same so than too very just dont now
sama kayak
`

// IsStopword reports whether the lowercased word is a stopword.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// IsInterestingQuery filters out suggestions that would make poor search
// queries: too short, purely numeric, or dominated by stopwords (fewer than
// 30% content words).
func IsInterestingQuery(text string, minLength int) bool {
	text = strings.ToLower(strings.TrimSpace(text))

	if len(text) < minLength {
		return false
	}
	if isAllDigits(strings.ReplaceAll(text, " ", "")) {
		return false
	}

	words := splitWords(text)
	if len(words) == 0 {
		return false
	}

	content := 0
	for _, w := range words {
		if !IsStopword(w) {
			content++
		}
	}
	if content == 0 {
		return false
	}
	return float64(content)/float64(len(words)) >= 0.3
}

// splitWords extracts word tokens (letters, digits, underscore) from text.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

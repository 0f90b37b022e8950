// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

// Package textfold normalizes arbitrary Unicode text for catalog queries.
//
// # Usage
//
// The external film catalog matches titles accent-insensitively. Folding the
// query on our side ("Amélie" → "amelie") keeps outbound query strings stable
// regardless of how the client spelled the title.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining accent marks.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		// Fall back to the raw string rather than dropping the query.
		result = s
	}
	return strings.ToLower(result)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

// Package query parses multi-value URL query parameters. Malformed
// entries are skipped rather than surfaced as errors, matching how the
// film search endpoints treat unusable criteria.
package query

import (
	"strconv"
	"strings"
)

// IntSlice converts raw query values into integers, dropping entries
// that do not parse.
func IntSlice(values []string) []int {
	var parsed []int
	for _, value := range values {
		if number, err := strconv.Atoi(value); err == nil {
			parsed = append(parsed, number)
		}
	}
	return parsed
}

// StringSlice splits a comma-separated query value into trimmed,
// non-empty parts. An empty input yields nil.
func StringSlice(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

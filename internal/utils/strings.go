// Package utils provides small shared helpers.
package utils

import "strings"

// ParseCSV splits a comma-separated string and returns trimmed
// non-empty values. Returns nil for empty/whitespace-only input. Used
// to parse peer lists stored in the analysis database.
func ParseCSV(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	for _, v := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

// JoinCSV renders values comma-separated, skipping empties.
func JoinCSV(values []string) string {
	var kept []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ",")
}

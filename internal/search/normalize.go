package search

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLength is the shortest trimmed query that reaches the backend.
const MinQueryLength = 2

// NormalizeQuery trims the query and collapses inner whitespace. Case and
// punctuation are kept; matching is case-insensitive downstream.
func NormalizeQuery(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	return strings.Join(strings.Fields(input), " ")
}

// Searchable reports whether a normalized query is long enough to search.
func Searchable(normalized string) bool {
	return utf8.RuneCountInString(normalized) >= MinQueryLength
}

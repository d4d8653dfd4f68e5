package search

import "strings"

// tokenize splits a query on runs of whitespace. Words keep their case and
// punctuation.
func tokenize(query string) []string {
	return strings.Fields(query)
}

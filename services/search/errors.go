package search

import "errors"

var (
	ErrEmptyQuery = errors.New("query has no words")

	// ErrLexicalServiceUnavailable is returned when no word of the query could
	// be annotated, which would otherwise look like a search with no matches.
	ErrLexicalServiceUnavailable = errors.New("lexical service unavailable")
)

package lexical

import "errors"

var (
	// ErrLookupRequired is returned when an annotator is created without a lookup.
	ErrLookupRequired = errors.New("lexical lookup required")

	errAnnotationIncomplete = errors.New("annotation did not complete")
)

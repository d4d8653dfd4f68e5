package thesauri

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the service answers 2xx with a body
// that lacks the fields a lookup depends on.
var ErrMalformedResponse = errors.New("malformed response from lexical service")

// PartOfSpeechFlags reports which parts of speech the service considers
// possible for a word.
type PartOfSpeechFlags struct {
	Noun bool `json:"noun"`
	Adj  bool `json:"adj"`
	Verb bool `json:"verb"`
	Adv  bool `json:"adv"`
}

type posResponse struct {
	Status *PartOfSpeechFlags `json:"status"`
}

type synset struct {
	Synonyms []string `json:"synonyms"`
}

type lookupResponse struct {
	Synsets []synset `json:"synsets"`
}

type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lexical service error (status %d): %s - %s", e.StatusCode, e.Message, e.Body)
}

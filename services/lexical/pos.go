package lexical

import "github.com/meghashyamc/lexisearch/clients/thesauri"

// Part-of-speech codes, as used by the lexical service in lookup paths.
const (
	Noun      = "noun"
	Adjective = "adj"
	Verb      = "verb"
	Adverb    = "adv"
)

// ChoosePartOfSpeech picks one part of speech from the candidate flags in the
// fixed order noun, adjective, verb, adverb. A word with no flags set is
// treated as a noun.
func ChoosePartOfSpeech(flags thesauri.PartOfSpeechFlags) string {
	switch {
	case flags.Noun:
		return Noun
	case flags.Adj:
		return Adjective
	case flags.Verb:
		return Verb
	case flags.Adv:
		return Adverb
	default:
		return Noun
	}
}

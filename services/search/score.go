package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/meghashyamc/lexisearch/db/searchdb"
	"github.com/meghashyamc/lexisearch/services/lexical"
)

// scoreIncrement is added once per matching term, however often it occurs.
const scoreIncrement = 2

type Result struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Score   int    `json:"score"`
}

// expandTerms builds the lowercase term set for a query. Nouns contribute
// only themselves; every other part of speech also contributes its synonyms.
func expandTerms(analyses []lexical.WordAnalysis) []string {
	seen := make(map[string]struct{})
	terms := make([]string, 0, len(analyses))

	add := func(term string) {
		term = strings.ToLower(term)
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	for _, analysis := range analyses {
		add(analysis.Word)
		if analysis.PartOfSpeech == lexical.Noun {
			continue
		}
		for _, synonym := range analysis.Synonyms {
			add(synonym)
		}
	}

	return terms
}

// scoreDocuments scores each document by the terms found anywhere in its
// lowercased title and content, drops documents without a match and orders
// the rest by descending score. Equal scores keep the order of documents.
func scoreDocuments(terms []string, documents []searchdb.Document) []Result {
	results := make([]Result, 0, len(documents))

	for _, document := range documents {
		text := strings.ToLower(document.Title + " " + document.Content)

		score := 0
		for _, term := range terms {
			if strings.Contains(text, term) {
				score += scoreIncrement
			}
		}
		if score == 0 {
			continue
		}

		results = append(results, Result{
			ID:      document.ID,
			Title:   document.Title,
			Content: document.Content,
			Score:   score,
		})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return results
}

package search

import (
	"context"
	"fmt"

	"github.com/meghashyamc/lexisearch/db/searchdb"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/services/lexical"
)

type Annotator interface {
	Annotate(ctx context.Context, words []string) []lexical.WordResult
}

type Catalog interface {
	Documents() ([]searchdb.Document, error)
}

type Service struct {
	logger    logger.Logger
	annotator Annotator
	catalog   Catalog
}

type Response struct {
	Query    string
	Analysis []lexical.WordAnalysis
	Results  []Result
	Failures []lexical.WordFailure
}

func New(logger logger.Logger, annotator Annotator, catalog Catalog) *Service {
	return &Service{
		logger:    logger,
		annotator: annotator,
		catalog:   catalog,
	}
}

// Search annotates the words of query and ranks the catalog against them.
// Words that could not be annotated are left out of the ranking and reported
// in Failures; if none could be annotated the search fails.
func (s *Service) Search(ctx context.Context, query string) (*Response, error) {
	words := tokenize(query)
	if len(words) == 0 {
		return nil, ErrEmptyQuery
	}

	wordResults := s.annotator.Annotate(ctx, words)
	analyses := lexical.Analyses(wordResults)
	failures := lexical.Failures(wordResults)

	if len(analyses) == 0 {
		s.logger.Error("no word of the query could be annotated", "query", query, "words", len(words))
		return nil, fmt.Errorf("%w: %d of %d words failed", ErrLexicalServiceUnavailable, len(failures), len(words))
	}
	if len(failures) > 0 {
		s.logger.Warn("some words could not be annotated", "query", query, "failed", len(failures), "words", len(words))
	}

	documents, err := s.catalog.Documents()
	if err != nil {
		s.logger.Error("could not load documents", "err", err.Error())
		return nil, fmt.Errorf("could not load documents: %w", err)
	}

	terms := expandTerms(analyses)
	results := scoreDocuments(terms, documents)
	s.logger.Debug("search completed", "query", query, "terms", len(terms), "results", len(results))

	return &Response{
		Query:    query,
		Analysis: analyses,
		Results:  results,
		Failures: failures,
	}, nil
}

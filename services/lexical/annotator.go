// Package lexical annotates query words with a part of speech and synonyms
// taken from the lexical service.
package lexical

import (
	"context"
	"fmt"
	"sync"

	"github.com/meghashyamc/lexisearch/clients/thesauri"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/metrics"
	"github.com/panjf2000/ants/v2"
)

const defaultPoolSize = 16

// Lookup is what the annotator needs from the lexical service.
type Lookup interface {
	PartOfSpeech(ctx context.Context, word string) (thesauri.PartOfSpeechFlags, error)
	Synonyms(ctx context.Context, pos string, word string) ([]string, error)
}

type Annotator struct {
	lookup Lookup
	logger logger.Logger
	pool   *ants.Pool
}

// Option configures an Annotator.
type Option func(*Annotator) error

// WithPoolSize bounds how many words are looked up at the same time.
func WithPoolSize(size int) Option {
	return func(a *Annotator) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size, ants.WithPanicHandler(a.handlePanic))
		if err != nil {
			return err
		}

		if a.pool != nil {
			a.pool.Release()
		}
		a.pool = pool
		return nil
	}
}

func New(lookup Lookup, logger logger.Logger, opts ...Option) (*Annotator, error) {
	if lookup == nil {
		return nil, ErrLookupRequired
	}

	annotator := &Annotator{
		lookup: lookup,
		logger: logger,
	}

	for _, opt := range append([]Option{WithPoolSize(defaultPoolSize)}, opts...) {
		if err := opt(annotator); err != nil {
			annotator.Release()
			return nil, err
		}
	}

	return annotator, nil
}

// Annotate looks up every word concurrently and waits for all of them.
// The result for words[i] is at index i; a word that could not be annotated
// carries its error instead of an analysis.
func (a *Annotator) Annotate(ctx context.Context, words []string) []WordResult {
	results := make([]WordResult, len(words))
	var wg sync.WaitGroup

	for i, word := range words {
		// Stays in place if the task never completes
		results[i] = WordResult{Word: word, Err: errAnnotationIncomplete}

		wg.Add(1)
		err := a.pool.Submit(func() {
			defer wg.Done()
			results[i] = a.annotateWord(ctx, word)
		})
		if err != nil {
			wg.Done()
			a.logger.Error("could not schedule word annotation", "word", word, "err", err.Error())
			results[i] = WordResult{Word: word, Err: fmt.Errorf("could not schedule annotation: %w", err)}
		}
	}

	wg.Wait()

	for _, result := range results {
		if result.OK() {
			metrics.WordAnnotationsTotal.WithLabelValues("ok").Inc()
		} else {
			metrics.WordAnnotationsTotal.WithLabelValues("failed").Inc()
		}
	}

	return results
}

func (a *Annotator) annotateWord(ctx context.Context, word string) WordResult {
	flags, err := a.lookup.PartOfSpeech(ctx, word)
	if err != nil {
		a.logger.Warn("part of speech lookup failed, dropping word", "word", word, "err", err.Error())
		return WordResult{Word: word, Err: fmt.Errorf("part of speech lookup: %w", err)}
	}

	pos := ChoosePartOfSpeech(flags)

	synonyms, err := a.lookup.Synonyms(ctx, pos, word)
	if err != nil {
		a.logger.Warn("synonym lookup failed, dropping word", "word", word, "pos", pos, "err", err.Error())
		return WordResult{Word: word, Err: fmt.Errorf("synonym lookup: %w", err)}
	}
	if synonyms == nil {
		synonyms = []string{}
	}

	return WordResult{
		Word: word,
		Analysis: &WordAnalysis{
			Word:         word,
			PartOfSpeech: pos,
			Synonyms:     synonyms,
		},
	}
}

func (a *Annotator) handlePanic(recovered any) {
	a.logger.Error("word annotation panicked", "panic", fmt.Sprint(recovered))
}

// Release stops the worker pool. The annotator cannot be used afterwards.
func (a *Annotator) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

package lexical

type WordAnalysis struct {
	Word         string   `json:"word"`
	PartOfSpeech string   `json:"pos"`
	Synonyms     []string `json:"synonyms"`
}

// WordResult is the outcome of annotating one word: Analysis is set on
// success, Err on failure.
type WordResult struct {
	Word     string
	Analysis *WordAnalysis
	Err      error
}

func (r WordResult) OK() bool {
	return r.Err == nil && r.Analysis != nil
}

type WordFailure struct {
	Word  string `json:"word"`
	Error string `json:"error"`
}

// Analyses keeps the successful results, in input order.
func Analyses(results []WordResult) []WordAnalysis {
	analyses := make([]WordAnalysis, 0, len(results))
	for _, result := range results {
		if result.OK() {
			analyses = append(analyses, *result.Analysis)
		}
	}
	return analyses
}

// Failures keeps the failed results, in input order.
func Failures(results []WordResult) []WordFailure {
	var failures []WordFailure
	for _, result := range results {
		if result.OK() {
			continue
		}
		failure := WordFailure{Word: result.Word, Error: errAnnotationIncomplete.Error()}
		if result.Err != nil {
			failure.Error = result.Err.Error()
		}
		failures = append(failures, failure)
	}
	return failures
}

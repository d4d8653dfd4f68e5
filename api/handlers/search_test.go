package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func documentResult(id int, score int) map[string]any {
	titles := map[int][2]string{
		1: {"Beautiful Night Sky", "Stars were twinkling in the night sky"},
		2: {"Astronomy Guide", "The sky contains many stars"},
		3: {"Poetry", "Lovely stars sparkle in the dark night"},
	}
	return map[string]any{
		"id":      float64(id),
		"title":   titles[id][0],
		"content": titles[id][1],
		"score":   float64(score),
	}
}

func wordAnalysis(word string, pos string, synonyms ...string) map[string]any {
	synonymList := make([]any, 0, len(synonyms))
	for _, synonym := range synonyms {
		synonymList = append(synonymList, synonym)
	}
	return map[string]any{"word": word, "pos": pos, "synonyms": synonymList}
}

var searchHandlerTestCases = []testCase{
	{
		name:             "NoQuery",
		queryParams:      map[string]string{},
		expectedStatus:   http.StatusBadRequest,
		expectedResponse: map[string]any{"error": "Missing query parameter q"},
	},
	{
		name:             "EmptyQuery",
		queryParams:      map[string]string{"q": ""},
		expectedStatus:   http.StatusBadRequest,
		expectedResponse: map[string]any{"error": "Missing query parameter q"},
	},
	{
		name:             "WhitespaceQuery",
		queryParams:      map[string]string{"q": "  \t "},
		expectedStatus:   http.StatusBadRequest,
		expectedResponse: map[string]any{"error": "Missing query parameter q"},
	},
	{
		name:             "QueryTooLong",
		queryParams:      map[string]string{"q": strings.Repeat("a", 1001)},
		expectedStatus:   http.StatusBadRequest,
		expectedResponse: map[string]any{"error": "Query parameter q is too long"},
	},
	{
		name:           "NounsMatchOnlyThemselves",
		queryParams:    map[string]string{"q": "stars night"},
		expectedStatus: http.StatusOK,
		expectedResponse: map[string]any{
			"query": "stars night",
			"analysis": []any{
				wordAnalysis("stars", "noun", "celebrity", "lead"),
				wordAnalysis("night", "noun", "nighttime", "dark", "evening"),
			},
			"results": []any{
				documentResult(1, 4),
				documentResult(3, 4),
				documentResult(2, 2),
			},
		},
	},
	{
		name:           "AdjectiveExpandsToSynonyms",
		queryParams:    map[string]string{"q": "bright"},
		expectedStatus: http.StatusOK,
		expectedResponse: map[string]any{
			"query":    "bright",
			"analysis": []any{wordAnalysis("bright", "adj", "twinkling", "luminous", "smart")},
			"results":  []any{documentResult(1, 2)},
		},
	},
	{
		name:           "VerbExpandsToSynonyms",
		queryParams:    map[string]string{"q": "shimmer"},
		expectedStatus: http.StatusOK,
		expectedResponse: map[string]any{
			"query":    "shimmer",
			"analysis": []any{wordAnalysis("shimmer", "verb", "sparkle", "glint")},
			"results":  []any{documentResult(3, 2)},
		},
	},
	{
		name:           "NoFlagsDefaultsToNoun",
		queryParams:    map[string]string{"q": "hmm"},
		expectedStatus: http.StatusOK,
		expectedResponse: map[string]any{
			"query":    "hmm",
			"analysis": []any{wordAnalysis("hmm", "noun")},
			"results":  []any{},
		},
	},
	{
		name:           "FailedWordIsDropped",
		queryParams:    map[string]string{"q": "night zzyzx stars"},
		expectedStatus: http.StatusOK,
		expectedResponse: map[string]any{
			"query": "night zzyzx stars",
			"analysis": []any{
				wordAnalysis("night", "noun", "nighttime", "dark", "evening"),
				wordAnalysis("stars", "noun", "celebrity", "lead"),
			},
			"results": []any{
				documentResult(1, 4),
				documentResult(3, 4),
				documentResult(2, 2),
			},
		},
	},
	{
		name:           "MalformedAnswerIsDropped",
		queryParams:    map[string]string{"q": "broken night"},
		expectedStatus: http.StatusOK,
		expectedResponse: map[string]any{
			"query":    "broken night",
			"analysis": []any{wordAnalysis("night", "noun", "nighttime", "dark", "evening")},
			"results": []any{
				documentResult(1, 2),
				documentResult(3, 2),
			},
		},
	},
	{
		name:             "AllWordsFailed",
		queryParams:      map[string]string{"q": "zzyzx qwerty"},
		expectedStatus:   http.StatusBadGateway,
		expectedResponse: map[string]any{"error": "lexical service unavailable"},
	},
}

func TestHandleSearch(t *testing.T) {
	assert := require.New(t)
	server, cleanup := setupTestServer(t, assert)
	defer cleanup()

	for _, testCase := range searchHandlerTestCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert := require.New(t)
			w := makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", testCase.requestHeaders, testCase.queryParams)
			assert.Equal(testCase.expectedStatus, w.Code, fmt.Sprintf("response gotten was %s", w.Body.String()))

			if testCase.expectedResponse == nil {
				return
			}

			responseMap := decodeResponse(assert, w)
			// failures are checked separately
			delete(responseMap, "failures")
			assert.Equal(testCase.expectedResponse, responseMap)
		})
	}
}

func TestHandleSearchReportsFailedWords(t *testing.T) {
	assert := require.New(t)
	server, cleanup := setupTestServer(t, assert)
	defer cleanup()

	w := makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", nil, map[string]string{"q": "zzyzx night broken"})
	assert.Equal(http.StatusOK, w.Code)

	failures, ok := decodeResponse(assert, w)["failures"].([]any)
	assert.True(ok, "expected a failures list")
	assert.Len(failures, 2)
	assert.Equal("zzyzx", failures[0].(map[string]any)["word"])
	assert.Equal("broken", failures[1].(map[string]any)["word"])
	assert.Contains(failures[0].(map[string]any)["error"], "404")

	w = makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", nil, map[string]string{"q": "night"})
	_, hasFailures := decodeResponse(assert, w)["failures"]
	assert.False(hasFailures, "failures should be omitted when every word was annotated")
}

func TestHandleSearchSkipsServiceForInvalidQuery(t *testing.T) {
	assert := require.New(t)
	server, cleanup := setupTestServer(t, assert)
	defer cleanup()

	w := makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", nil, map[string]string{"q": " "})
	assert.Equal(http.StatusBadRequest, w.Code)
	assert.Zero(server.lexicalCalls.Load())
}

func TestHandleSearchServiceDown(t *testing.T) {
	assert := require.New(t)
	server, cleanup := setupTestServer(t, assert)
	defer cleanup()

	server.lexicalServer.Close()

	w := makeTestHTTPRequest(server.router, assert, http.MethodGet, "/search", nil, map[string]string{"q": "stars night"})
	assert.Equal(http.StatusBadGateway, w.Code)
	assert.Equal(map[string]any{"error": "lexical service unavailable"}, decodeResponse(assert, w))
}

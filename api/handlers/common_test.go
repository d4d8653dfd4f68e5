// Common test helpers
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/lexisearch/clients/thesauri"
	"github.com/meghashyamc/lexisearch/config"
	"github.com/meghashyamc/lexisearch/db/searchdb"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/services/lexical"
	"github.com/meghashyamc/lexisearch/validation"
	"github.com/stretchr/testify/require"
)

// Canned answers of the fake lexical service. Words missing from
// testPartsOfSpeech are answered with 404.
var testPartsOfSpeech = map[string]string{
	"stars":   `{"status":{"noun":true,"adj":false,"verb":true,"adv":false}}`,
	"night":   `{"status":{"noun":true,"adj":false,"verb":false,"adv":false}}`,
	"bright":  `{"status":{"noun":false,"adj":true,"verb":true,"adv":false}}`,
	"shimmer": `{"status":{"noun":false,"adj":false,"verb":true,"adv":false}}`,
	"hmm":     `{"status":{"noun":false,"adj":false,"verb":false,"adv":false}}`,
	"broken":  `{"word":"broken"}`,
}

var testSynonyms = map[string]string{
	"noun/stars":   `{"synsets":[{"synonyms":["celebrity","lead"]}]}`,
	"noun/night":   `{"synsets":[{"synonyms":["nighttime","dark"]},{"synonyms":["evening"]}]}`,
	"adj/bright":   `{"synsets":[{"synonyms":["twinkling","luminous"]},{"synonyms":["smart"]}]}`,
	"verb/shimmer": `{"synsets":[{"synonyms":["sparkle","glint"]}]}`,
	"noun/hmm":     `{}`,
}

type testCase struct {
	name             string
	requestHeaders   map[string]string
	queryParams      map[string]string
	expectedStatus   int
	expectedResponse map[string]any
}

type testServer struct {
	router        *gin.Engine
	lexicalServer *httptest.Server
	lexicalCalls  *atomic.Int64
}

func newTestLogger() logger.Logger {

	opts := &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}
	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func newFakeLexicalServer(calls *atomic.Int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		path := strings.TrimPrefix(r.URL.Path, "/api/")
		var (
			body  string
			found bool
		)
		switch {
		case strings.HasPrefix(path, "pos/"):
			body, found = testPartsOfSpeech[strings.TrimPrefix(path, "pos/")]
		case strings.HasPrefix(path, "lookup/"):
			body, found = testSynonyms[strings.TrimPrefix(path, "lookup/")]
		}
		if !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func setupTestServer(t *testing.T, assert *require.Assertions) (*testServer, func()) {

	t.Setenv("ENV", "test")

	cfg, err := config.Load("")
	assert.NoError(err, "could not load config")

	calls := &atomic.Int64{}
	lexicalServer := newFakeLexicalServer(calls)
	cfg.Set("THESAURI_URL", lexicalServer.URL+"/api")

	testLogger := newTestLogger()

	catalog, err := searchdb.New(testLogger, cfg)
	assert.NoError(err, "could not create search database")
	assert.NoError(catalog.BuildIndex(searchdb.ReferenceDocuments), "could not index reference documents")

	client, err := thesauri.NewClient(cfg, testLogger)
	assert.NoError(err, "could not create lexical client")

	annotator, err := lexical.New(client, testLogger, lexical.WithPoolSize(cfg.GetLookupConcurrency()))
	assert.NoError(err, "could not create annotator")

	validator, err := validation.New(testLogger)
	assert.NoError(err, "could not create validator")

	gin.SetMode(gin.TestMode)
	router := gin.New()

	SetupSearch(router, testLogger, annotator, catalog, validator)
	SetupDocuments(router, testLogger, catalog)

	cleanup := func() {
		annotator.Release()
		lexicalServer.Close()
		assert.NoError(catalog.Close(), "could not close search database")
	}

	return &testServer{router: router, lexicalServer: lexicalServer, lexicalCalls: calls}, cleanup
}

func makeTestHTTPRequest(router *gin.Engine, assert *require.Assertions, method string, endpoint string, headers map[string]string, queryParams map[string]string) *httptest.ResponseRecorder {

	w := httptest.NewRecorder()

	if len(queryParams) > 0 {
		values := url.Values{}
		for key, value := range queryParams {
			values.Set(key, value)
		}
		endpoint = endpoint + "?" + values.Encode()
	}

	slog.Info("Making test request", "method", method, "endpoint", endpoint, "headers", headers)

	req, err := http.NewRequest(method, endpoint, nil)
	assert.NoError(err)

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	router.ServeHTTP(w, req)

	return w
}

func decodeResponse(assert *require.Assertions, w *httptest.ResponseRecorder) map[string]any {
	var responseMap map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &responseMap)
	assert.NoError(err, "response was not a JSON object: %s", w.Body.String())
	return responseMap
}

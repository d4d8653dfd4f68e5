// Package thesauri is a client for the ThesauriUltra lexical service, which
// classifies words by part of speech and returns synonym groups.
package thesauri

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meghashyamc/lexisearch/config"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/metrics"
)

const (
	endpointPartOfSpeech = "pos"
	endpointLookup       = "lookup"

	maxErrorBodySize = 4 * 1024
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg *config.Config, logger logger.Logger) (*Client, error) {
	baseURL := strings.TrimRight(cfg.GetThesauriURL(), "/")
	if baseURL == "" {
		return nil, errors.New("THESAURI_URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid THESAURI_URL: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: cfg.GetThesauriTimeout(),
		},
		logger: logger,
	}, nil
}

// PartOfSpeech asks which parts of speech apply to word.
func (c *Client) PartOfSpeech(ctx context.Context, word string) (PartOfSpeechFlags, error) {
	var body posResponse
	if err := c.get(ctx, endpointPartOfSpeech, &body, word); err != nil {
		return PartOfSpeechFlags{}, err
	}

	if body.Status == nil {
		return PartOfSpeechFlags{}, fmt.Errorf("%w: missing status for %q", ErrMalformedResponse, word)
	}

	return *body.Status, nil
}

// Synonyms returns every synonym of word under pos, flattened across synonym
// groups in the order the service returns them. A response without synsets
// yields no synonyms.
func (c *Client) Synonyms(ctx context.Context, pos string, word string) ([]string, error) {
	var body lookupResponse
	if err := c.get(ctx, endpointLookup, &body, pos, word); err != nil {
		return nil, err
	}

	synonyms := make([]string, 0)
	for _, set := range body.Synsets {
		synonyms = append(synonyms, set.Synonyms...)
	}

	return synonyms, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any, segments ...string) error {
	requestURL := c.buildURL(endpoint, segments...)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		metrics.ThesauriRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ThesauriRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ThesauriRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return c.handleAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.ThesauriRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}

	c.logger.Debug("lexical service call completed", "url", requestURL, "duration", time.Since(start).String())
	metrics.ThesauriRequestsTotal.WithLabelValues(endpoint, "ok").Inc()

	return nil
}

func (c *Client) buildURL(endpoint string, segments ...string) string {
	var builder strings.Builder
	builder.WriteString(c.baseURL)
	builder.WriteString("/")
	builder.WriteString(endpoint)
	for _, segment := range segments {
		builder.WriteString("/")
		builder.WriteString(url.PathEscape(segment))
	}
	return builder.String()
}

func (c *Client) handleAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
		Body:       string(body),
	}
}

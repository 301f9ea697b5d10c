// Package search provides the web search capability used to find candidate
// evidence documents for a claim.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/veritas-checks/veritas/internal/model"
)

// Hit is one search result candidate
type Hit struct {
	Title   string
	URL     string
	Snippet string
}

// Client returns candidate URLs for a query. Implementations must respect
// the context deadline.
type Client interface {
	Search(ctx context.Context, query string, num int) ([]Hit, error)
}

// CSEClient queries the Google Custom Search Engine REST API
type CSEClient struct {
	httpClient *http.Client
	apiKey     string
	engineID   string
	endpoint   string
}

// NewCSEClient creates a search client for the given engine. The per-call
// timeout bounds each search request.
func NewCSEClient(cfg model.SearchConfig, timeout time.Duration) *CSEClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://www.googleapis.com/customsearch/v1"
	}
	return &CSEClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		engineID:   cfg.EngineID,
		endpoint:   endpoint,
	}
}

// cseResponse is the subset of the CSE reply we consume
type cseResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search requests up to num candidate URLs for the query. The CSE API caps
// a single page at 10 results.
func (c *CSEClient) Search(ctx context.Context, query string, num int) ([]Hit, error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, fmt.Errorf("search: missing API key or engine ID")
	}
	if num <= 0 {
		num = 5
	}
	if num > 10 {
		num = 10
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(num))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed cseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]Hit, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		hits = append(hits, Hit{Title: item.Title, URL: item.Link, Snippet: item.Snippet})
	}
	return hits, nil
}

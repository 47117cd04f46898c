package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"briefcast/internal/config"
	"briefcast/internal/resilience/circuitbreaker"
)

// Tavily implements Searcher against the Tavily search API.
type Tavily struct {
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewTavily creates a Tavily search client from the search configuration.
func NewTavily(cfg config.SearchConfig) *Tavily {
	return &Tavily{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: circuitbreaker.New(circuitbreaker.SearchAPIConfig()),
	}
}

// tavilyRequest is the JSON body for POST /search.
type tavilyRequest struct {
	Query          string   `json:"query"`
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
	TimeRange      string   `json:"time_range,omitempty"`
}

// tavilyResponse is the subset of the search response we consume.
type tavilyResponse struct {
	Results []Result `json:"results"`
}

// Search issues one search call through the circuit breaker. There is no
// retry: a failed call degrades the caller's output.
func (t *Tavily) Search(ctx context.Context, q Query) ([]Result, error) {
	result, err := t.circuitBreaker.Execute(func() (interface{}, error) {
		return t.doSearch(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("search api circuit breaker open, request rejected",
				slog.String("state", t.circuitBreaker.State().String()))
			return nil, fmt.Errorf("search api unavailable: circuit breaker open")
		}
		return nil, err
	}
	return result.([]Result), nil
}

// doSearch performs the actual HTTP round trip.
func (t *Tavily) doSearch(ctx context.Context, q Query) ([]Result, error) {
	body, err := json.Marshal(tavilyRequest{
		Query:          q.Text,
		MaxResults:     q.MaxResults,
		IncludeDomains: q.IncludeDomains,
		ExcludeDomains: q.ExcludeDomains,
		TimeRange:      q.TimeRange,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Read a bounded sample of the body for the log; never for the client.
		sample, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("search api returned non-200 status",
			slog.Int("status", resp.StatusCode),
			slog.String("body_sample", string(sample)))
		return nil, fmt.Errorf("search api returned status %d", resp.StatusCode)
	}

	var out tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	slog.Debug("search completed",
		slog.Int("results", len(out.Results)),
		slog.Duration("duration", time.Since(start)))

	return out.Results, nil
}

// NoOp is a searcher that returns no results. Useful for development and
// tests that never exercise the tool.
type NoOp struct{}

// Search returns an empty result list.
func (NoOp) Search(_ context.Context, _ Query) ([]Result, error) {
	return []Result{}, nil
}

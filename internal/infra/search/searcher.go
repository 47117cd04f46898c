// Package search provides the web-search tool the agent can invoke. The
// only implementation talks to the Tavily HTTP API; a NoOp exists for
// development and tests.
package search

import "context"

// Result is one web-search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// Query describes one search invocation. Zero values mean "no restriction".
type Query struct {
	// Text is the free-text query.
	Text string

	// MaxResults caps the number of hits returned.
	MaxResults int

	// IncludeDomains restricts hits to these domains.
	IncludeDomains []string

	// ExcludeDomains removes hits from these domains.
	ExcludeDomains []string

	// TimeRange restricts hit recency: "d" (day), "w" (week), "m" (month),
	// or "" for no restriction.
	TimeRange string
}

// Searcher is the web-search tool surface.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Result, error)
}

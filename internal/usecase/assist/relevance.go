package assist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"briefcast/internal/domain/entity"
	"briefcast/internal/observability/metrics"
)

const relevancePromptTemplate = `
Given the user's department: %s
and interests: %s,
is the following query relevant? Query: %s
Respond with 'Yes' or 'No'.
`

// isRelevant asks the model whether the query matches the user's department
// and interests. Only the literal answer "yes" (case-insensitive, trimmed)
// counts as relevant; any other output, including refusals and apologies,
// counts as not relevant. The call is never retried.
func (s *Service) isRelevant(ctx context.Context, query string, profile *entity.UserProfile) (bool, error) {
	prompt := fmt.Sprintf(relevancePromptTemplate,
		profile.Department, strings.Join(profile.Interests, ", "), query)

	start := time.Now()
	out, err := s.completer.Complete(ctx, prompt)
	metrics.RecordModelCall("relevance", time.Since(start), err)
	if err != nil {
		return false, fmt.Errorf("relevance check: %w", err)
	}

	relevant := strings.EqualFold(strings.TrimSpace(out), "yes")
	metrics.RecordRelevanceDecision(relevant)
	return relevant, nil
}

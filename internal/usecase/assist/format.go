package assist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"briefcast/internal/infra/search"
	"briefcast/internal/observability/metrics"
	"briefcast/internal/utils/text"
)

// Fixed formatter outputs. Clients key off these strings.
const (
	msgNoResults      = "No search results found."
	msgNothingToSum   = "No information available to summarize."
	msgSummaryFailure = "Unable to generate summary due to an unexpected error."
)

// formatSourceLimit is how many hits the source list and the overall summary
// consider.
const formatSourceLimit = 5

// maxSummaryInputRunes caps the content fed into a summary prompt so one
// oversized page cannot blow the model's context window.
const maxSummaryInputRunes = 8000

const threeLineSummaryTemplate = "Provide a three-line summary of the following content:\n\n%s\n\nSummary:"

const overallSummaryTemplate = "Provide a concise overall summary of the following information:\n\n%s\n\nSummary:"

// formatSearchResults renders up to five hits as a numbered markdown list,
// each with a model-generated three-line summary. A failed summary call
// degrades that entry, not the whole list.
func (s *Service) formatSearchResults(ctx context.Context, results []search.Result) string {
	if len(results) == 0 {
		return msgNoResults
	}

	var b strings.Builder
	b.WriteString("Top 5 Sources:\n\n")
	for i, r := range results {
		if i == formatSourceLimit {
			break
		}
		title := r.Title
		if title == "" {
			title = fmt.Sprintf("Reference %d", i+1)
		}
		url := r.URL
		if url == "" {
			url = "No URL available"
		}
		fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, title, url)

		summary := s.threeLineSummary(ctx, r.Content)
		fmt.Fprintf(&b, "   %s\n\n", summary)
	}
	return b.String()
}

func (s *Service) threeLineSummary(ctx context.Context, content string) string {
	if content == "" {
		content = "No content available"
	}
	content = text.TruncateRunes(content, maxSummaryInputRunes)

	start := time.Now()
	out, err := s.completer.Complete(ctx, fmt.Sprintf(threeLineSummaryTemplate, content))
	metrics.RecordModelCall("three_line_summary", time.Since(start), err)
	if err != nil {
		s.logger.WarnContext(ctx, "three-line summary failed", slog.Any("error", err))
		return "Summary unavailable."
	}
	return strings.TrimSpace(out)
}

// overallSummary condenses the first five hits into one model-generated
// paragraph. It never returns an error; failures degrade to fixed messages.
func (s *Service) overallSummary(ctx context.Context, results []search.Result) string {
	if len(results) == 0 {
		return msgNothingToSum
	}

	contents := make([]string, 0, formatSourceLimit)
	for i, r := range results {
		if i == formatSourceLimit {
			break
		}
		contents = append(contents, r.Content)
	}
	combined := text.TruncateRunes(strings.Join(contents, " "), maxSummaryInputRunes)

	start := time.Now()
	out, err := s.completer.Complete(ctx, fmt.Sprintf(overallSummaryTemplate, combined))
	metrics.RecordModelCall("overall_summary", time.Since(start), err)
	if err != nil {
		s.logger.ErrorContext(ctx, "overall summary failed", slog.Any("error", err))
		return msgSummaryFailure
	}
	return out
}

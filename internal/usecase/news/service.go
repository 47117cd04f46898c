// Package news curates a personalized digest: a domain-restricted web search
// seeded from the user's interests and skills, distilled by the model into a
// structured article list, then filtered to the recency window and sorted
// newest first.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"briefcast/internal/config"
	"briefcast/internal/domain/entity"
	"briefcast/internal/infra/llm"
	"briefcast/internal/infra/search"
	"briefcast/internal/observability/metrics"
	"briefcast/internal/repository"
)

const curatePromptTemplate = `
Based on these search results, identify the %d most recent and relevant news articles related to the user's interests (%s) and skills (%s).
Today's date is %s. Only include articles from the past week, prioritizing the most recent ones.
For each article, provide:
1. A concise title (max 15 words)
2. A brief summary (2-3 sentences)
3. The source URL
4. The exact publication date and time (if available, in UTC)
5. The source name

Format the output as a JSON array of objects, each containing 'title', 'summary', 'url', 'date', and 'source' keys. Respond with the JSON array only.
Ensure the 'date' field is in the format 'YYYY-MM-DD HH:MM:SS UTC' if available, or 'YYYY-MM-DD' if only the date is known.
If the exact date is not available, use 'Recent' as the date value.

Sort the articles by date, with the most recent first.

Search results:
%s
`

// Service curates the news digest.
type Service struct {
	completer llm.Completer
	searcher  search.Searcher
	users     repository.UserRepository
	cfg       config.NewsConfig
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a news service.
func NewService(
	completer llm.Completer,
	searcher search.Searcher,
	users repository.UserRepository,
	cfg config.NewsConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		completer: completer,
		searcher:  searcher,
		users:     users,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Recent returns up to the configured number of articles for the user,
// newest first. Search and model failures degrade to an empty list rather
// than an error; only an unknown user fails the call.
func (s *Service) Recent(ctx context.Context, userID string) ([]entity.NewsArticle, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recent news: %w", err)
	}

	now := s.now().UTC()
	interests := strings.Join(profile.Interests, ", ")
	skills := strings.Join(profile.Skills, ", ")
	currentDate := now.Format("2006-01-02")

	query := fmt.Sprintf("latest news as of %s related to %s and %s",
		currentDate, interests, skills)

	results, err := s.searcher.Search(ctx, search.Query{
		Text:           query,
		MaxResults:     s.cfg.RawResults,
		IncludeDomains: s.cfg.IncludeDomains,
		ExcludeDomains: s.cfg.ExcludeDomains,
		TimeRange:      "d",
	})
	metrics.RecordSearchCall(err)
	if err != nil {
		s.logger.ErrorContext(ctx, "news search failed", slog.Any("error", err))
		return []entity.NewsArticle{}, nil
	}

	prompt := fmt.Sprintf(curatePromptTemplate,
		s.cfg.MaxArticles, interests, skills, currentDate, renderResults(results))

	start := time.Now()
	out, err := s.completer.Complete(ctx, prompt)
	metrics.RecordModelCall("news_curate", time.Since(start), err)
	if err != nil {
		s.logger.ErrorContext(ctx, "news curation failed", slog.Any("error", err))
		return []entity.NewsArticle{}, nil
	}

	articles, ok := decodeArticles(out)
	if !ok {
		s.logger.ErrorContext(ctx, "news curation output did not decode")
		return []entity.NewsArticle{}, nil
	}

	curated := s.filterAndSort(articles, now)
	metrics.RecordNewsArticles(len(curated))
	return curated, nil
}

// filterAndSort drops articles older than the recency window or with an
// unparseable date, sorts the rest newest first, and truncates to the
// configured maximum.
func (s *Service) filterAndSort(articles []entity.NewsArticle, now time.Time) []entity.NewsArticle {
	kept := make([]entity.NewsArticle, 0, len(articles))
	for _, a := range articles {
		if a.Date == entity.DateRecent {
			kept = append(kept, a)
			continue
		}
		published, ok := parseDate(a.Date, now)
		if ok && now.Sub(published) <= s.cfg.Window {
			kept = append(kept, a)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		ti, _ := parseDate(kept[i].Date, now)
		tj, _ := parseDate(kept[j].Date, now)
		return ti.After(tj)
	})

	if len(kept) > s.cfg.MaxArticles {
		kept = kept[:s.cfg.MaxArticles]
	}
	return kept
}

// decodeArticles parses the model output as a JSON article array, tolerating
// a markdown code fence. ok is false when the output is not a valid array;
// the caller fails closed to an empty digest.
func decodeArticles(out string) ([]entity.NewsArticle, bool) {
	trimmed := strings.TrimSpace(out)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var articles []entity.NewsArticle
	if err := json.Unmarshal([]byte(trimmed), &articles); err != nil {
		return nil, false
	}
	return articles, true
}

// renderResults flattens search hits into the curation prompt.
func renderResults(results []search.Result) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "- %s (%s): %s\n", r.Title, r.URL, r.Content)
	}
	return b.String()
}

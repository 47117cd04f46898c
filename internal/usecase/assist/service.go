// Package assist answers natural-language questions for a user: a relevance
// gate, a tool-use loop over web search, and model-generated summaries of the
// sources, composed into a single response and logged to the user's history.
package assist

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"briefcast/internal/infra/llm"
	"briefcast/internal/infra/search"
	"briefcast/internal/observability/tracing"
	"briefcast/internal/repository"
	"briefcast/internal/usecase/conversation"
)

// rejectionMessage is returned verbatim when the relevance gate says no.
const rejectionMessage = "This query doesn't seem to be related to your department or interests. Would you like to rephrase your question or ask something more relevant?"

// conversationTitle labels logged exchanges.
const conversationTitle = "AI Response"

// fallbackSearchResults caps the direct search used when the agent loop
// produced no observations.
const fallbackSearchResults = 5

// Service orchestrates the answer pipeline.
type Service struct {
	completer     llm.Completer
	searcher      search.Searcher
	users         repository.UserRepository
	conversations *conversation.Service
	maxSteps      int
	logger        *slog.Logger
}

// NewService creates an assist service. maxSteps bounds the agent loop.
func NewService(
	completer llm.Completer,
	searcher search.Searcher,
	users repository.UserRepository,
	conversations *conversation.Service,
	maxSteps int,
	logger *slog.Logger,
) *Service {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Service{
		completer:     completer,
		searcher:      searcher,
		users:         users,
		conversations: conversations,
		maxSteps:      maxSteps,
		logger:        logger,
	}
}

// Generate answers the prompt for the given user. Irrelevant queries get the
// fixed rejection message after a single relevance call and no search. Both
// outcomes are appended to the user's conversation history; a failed history
// write is logged but does not fail the response.
func (s *Service) Generate(ctx context.Context, userID, prompt string) (string, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "assist.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	relevant, err := s.isRelevant(ctx, prompt, profile)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	var response string
	if relevant {
		response, err = s.answer(ctx, prompt)
		if err != nil {
			return "", fmt.Errorf("generate: %w", err)
		}
	} else {
		response = rejectionMessage
	}

	if err := s.conversations.Log(ctx, userID, prompt, response, conversationTitle); err != nil {
		s.logger.ErrorContext(ctx, "failed to log conversation",
			slog.String("uid", userID), slog.Any("error", err))
	}
	return response, nil
}

// answer runs the agent loop and composes the response text: the agent's
// answer, the formatted source list, and the overall summary.
func (s *Service) answer(ctx context.Context, prompt string) (string, error) {
	agentAnswer, steps, err := s.runAgent(ctx, prompt)
	if err != nil {
		return "", err
	}

	results := collectResults(steps)
	if len(results) == 0 {
		// The agent answered without searching; fetch sources directly so
		// the response still cites references.
		direct, err := s.searcher.Search(ctx, search.Query{
			Text:       prompt,
			MaxResults: fallbackSearchResults,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "fallback search failed", slog.Any("error", err))
		} else {
			results = direct
		}
	}

	formatted := s.formatSearchResults(ctx, results)
	overall := s.overallSummary(ctx, results)

	return fmt.Sprintf("%s\n\n%s\nOverall Summary:\n%s", agentAnswer, formatted, overall), nil
}

// collectResults flattens the observations from the first step that produced
// any. Later steps refine the query; the first hit list is the one the answer
// cites.
func collectResults(steps []Step) []search.Result {
	for _, step := range steps {
		if len(step.Observation) > 0 {
			return step.Observation
		}
	}
	return nil
}

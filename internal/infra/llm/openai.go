package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"briefcast/internal/config"
	"briefcast/internal/resilience/circuitbreaker"
	"briefcast/internal/utils/text"
)

// OpenAI implements Completer using OpenAI's chat-completion API.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	model          string
	maxTokens      int
	timeout        time.Duration
}

// NewOpenAI creates an OpenAI completer from the AI configuration.
func NewOpenAI(cfg config.AIConfig) *OpenAI {
	slog.Info("initialized OpenAI completer",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &OpenAI{
		client:         openai.NewClient(cfg.APIKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ModelAPIConfig("openai-api")),
		model:          cfg.Model,
		maxTokens:      cfg.MaxTokens,
		timeout:        cfg.Timeout,
	}
}

// Complete sends the prompt through the circuit breaker with a per-call
// timeout. There is no retry: callers degrade on failure.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doComplete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("state", o.circuitBreaker.State().String()))
			return "", fmt.Errorf("openai api unavailable: circuit breaker open")
		}
		return "", err
	}
	return result.(string), nil
}

// doComplete performs the actual API call.
func (o *OpenAI) doComplete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "completion failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Guard against empty choices before indexing.
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api returned empty response")
	}

	out := resp.Choices[0].Message.Content
	slog.DebugContext(ctx, "completion succeeded",
		slog.Int("prompt_length", text.CountRunes(prompt)),
		slog.Int("output_length", text.CountRunes(out)),
		slog.Duration("duration", duration))

	return out, nil
}

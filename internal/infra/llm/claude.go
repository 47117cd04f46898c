package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"briefcast/internal/config"
	"briefcast/internal/resilience/circuitbreaker"
	"briefcast/internal/utils/text"
)

// Claude implements Completer using Anthropic's Messages API.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	model          string
	maxTokens      int
	timeout        time.Duration
}

// NewClaude creates a Claude completer from the AI configuration.
func NewClaude(cfg config.AIConfig) *Claude {
	slog.Info("initialized Claude completer",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.ModelAPIConfig("claude-api")),
		model:          cfg.Model,
		maxTokens:      cfg.MaxTokens,
		timeout:        cfg.Timeout,
	}
}

// Complete sends the prompt through the circuit breaker with a per-call
// timeout. There is no retry: callers degrade on failure.
func (c *Claude) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doComplete(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("state", c.circuitBreaker.State().String()))
			return "", fmt.Errorf("claude api unavailable: circuit breaker open")
		}
		return "", err
	}
	return result.(string), nil
}

// doComplete performs the actual API call.
func (c *Claude) doComplete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "completion failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	out := textBlock.Text
	slog.DebugContext(ctx, "completion succeeded",
		slog.Int("prompt_length", text.CountRunes(prompt)),
		slog.Int("output_length", text.CountRunes(out)),
		slog.Duration("duration", duration))

	return out, nil
}

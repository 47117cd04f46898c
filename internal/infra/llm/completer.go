// Package llm provides chat-completion clients for the supported model
// providers. All implementations share the Completer interface: one prompt
// in, one text completion out. Reliability policy: a per-call timeout and a
// circuit breaker and no retries; a failed call degrades the caller's output.
package llm

import "context"

// Completer is the single call-and-parse surface the pipelines use to reach
// a language model.
type Completer interface {
	// Complete sends a prompt and returns the model's text output.
	Complete(ctx context.Context, prompt string) (string, error)
}

package llm

import "context"

// NoOp is a completer that echoes a canned response. Useful for development
// without provider credentials.
type NoOp struct {
	// Response is returned for every prompt. Empty means echo the prompt.
	Response string
}

// NewNoOp creates a NoOp completer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Complete returns the canned response, or the prompt itself when none is set.
func (n *NoOp) Complete(_ context.Context, prompt string) (string, error) {
	if n.Response != "" {
		return n.Response, nil
	}
	return prompt, nil
}

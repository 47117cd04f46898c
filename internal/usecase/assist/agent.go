package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"briefcast/internal/infra/search"
	"briefcast/internal/observability/metrics"
)

// actionWebSearch and actionFinal are the two moves the agent may make.
const (
	actionWebSearch = "web_search"
	actionFinal     = "final"
)

// agentStepResults caps how many hits one tool invocation feeds back.
const agentStepResults = 5

// msgStepsExhausted replaces the answer when the loop hits its step cap
// without the model ever producing one. The sources and overall summary
// still carry the findings.
const msgStepsExhausted = "I couldn't finish researching this question in time. The sources below cover what the search turned up."

// Step is one completed (tool invocation, tool result) pair.
type Step struct {
	Action      string
	Input       string
	Observation []search.Result
}

// decision is the JSON shape the agent prompt asks the model to emit.
type decision struct {
	Action string `json:"action"`
	Input  string `json:"input"`
	Answer string `json:"answer"`
}

const agentPromptTemplate = `You are a research assistant that answers questions using a web search tool.

Question: %s
%s
Decide your next move and respond with a single JSON object, nothing else:
- to search the web: {"action": "web_search", "input": "<search query>"}
- to answer: {"action": "final", "answer": "<your answer>"}

Use the search tool when you need current information. Once the observations
contain enough information, produce the final answer.`

// runAgent drives the tool-use loop: the model proposes either a web search
// or a final answer, searches are executed and their results appended as
// observations, and the loop repeats. The loop is bounded by maxSteps; when
// the budget is exhausted a fixed message stands in for the answer, since
// every model output so far was a tool request. Model output that does not
// decode as a decision is treated as a direct final answer rather than
// evaluated.
func (s *Service) runAgent(ctx context.Context, question string) (string, []Step, error) {
	var steps []Step

	for i := 0; i < s.maxSteps; i++ {
		prompt := fmt.Sprintf(agentPromptTemplate, question, renderSteps(steps))

		start := time.Now()
		out, err := s.completer.Complete(ctx, prompt)
		metrics.RecordModelCall("agent", time.Since(start), err)
		if err != nil {
			return "", steps, fmt.Errorf("agent step %d: %w", i+1, err)
		}

		d, ok := decodeDecision(out)
		if !ok || d.Action == actionFinal {
			answer := out
			if ok {
				answer = d.Answer
			}
			metrics.RecordAgentLoopSteps(i + 1)
			return answer, steps, nil
		}
		if d.Action != actionWebSearch {
			s.logger.WarnContext(ctx, "agent proposed unknown tool",
				slog.String("action", d.Action))
			metrics.RecordAgentLoopSteps(i + 1)
			return out, steps, nil
		}

		results, err := s.searcher.Search(ctx, search.Query{
			Text:       d.Input,
			MaxResults: agentStepResults,
		})
		metrics.RecordSearchCall(err)
		if err != nil {
			// Feed the failure back as an empty observation so the agent
			// can still answer from what it knows.
			s.logger.WarnContext(ctx, "tool invocation failed", slog.Any("error", err))
			results = []search.Result{}
		}
		steps = append(steps, Step{Action: actionWebSearch, Input: d.Input, Observation: results})
	}

	s.logger.WarnContext(ctx, "agent step budget exhausted",
		slog.Int("max_steps", s.maxSteps))
	metrics.RecordAgentLoopSteps(s.maxSteps)
	return msgStepsExhausted, steps, nil
}

// decodeDecision parses the model output as a decision object, tolerating a
// markdown code fence around the JSON. ok is false when the output is not a
// decision at all.
func decodeDecision(out string) (decision, bool) {
	trimmed := stripCodeFence(strings.TrimSpace(out))

	var d decision
	if err := json.Unmarshal([]byte(trimmed), &d); err != nil {
		return decision{}, false
	}
	if d.Action != actionWebSearch && d.Action != actionFinal {
		return decision{}, false
	}
	return d, true
}

// renderSteps formats completed steps as observations for the next prompt.
func renderSteps(steps []Step) string {
	if len(steps) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\nObservations so far:\n")
	for i, step := range steps {
		fmt.Fprintf(&b, "%d. searched %q:\n", i+1, step.Input)
		if len(step.Observation) == 0 {
			b.WriteString("   no results\n")
			continue
		}
		for _, r := range step.Observation {
			fmt.Fprintf(&b, "   - %s (%s): %s\n", r.Title, r.URL, r.Content)
		}
	}
	return b.String()
}

// stripCodeFence removes a surrounding ``` or ```json fence if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

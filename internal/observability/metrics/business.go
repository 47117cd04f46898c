// Package metrics defines Prometheus business metrics for the assist and
// news pipelines. HTTP-level metrics live in the handler layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	modelCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_calls_total",
			Help: "Total number of language-model calls by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	modelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "model_call_duration_seconds",
			Help:    "Language-model call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"operation"},
	)

	searchCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_calls_total",
			Help: "Total number of web-search calls by outcome",
		},
		[]string{"status"},
	)

	relevanceDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relevance_decisions_total",
			Help: "Relevance filter decisions",
		},
		[]string{"decision"},
	)

	agentLoopSteps = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agent_loop_steps",
			Help:    "Number of tool steps taken per agent loop",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
		},
	)

	newsArticlesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_articles_returned",
			Help:    "Number of articles returned per digest request",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)
)

// RecordModelCall records one model call with its duration and outcome.
func RecordModelCall(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	modelCallsTotal.WithLabelValues(operation, status).Inc()
	modelCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordSearchCall records one web-search call outcome.
func RecordSearchCall(err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	searchCallsTotal.WithLabelValues(status).Inc()
}

// RecordRelevanceDecision records a relevance filter decision.
func RecordRelevanceDecision(relevant bool) {
	decision := "relevant"
	if !relevant {
		decision = "not_relevant"
	}
	relevanceDecisionsTotal.WithLabelValues(decision).Inc()
}

// RecordAgentLoopSteps records the number of tool steps one loop performed.
func RecordAgentLoopSteps(steps int) {
	agentLoopSteps.Observe(float64(steps))
}

// RecordNewsArticles records how many articles a digest request returned.
func RecordNewsArticles(count int) {
	newsArticlesReturned.Observe(float64(count))
}

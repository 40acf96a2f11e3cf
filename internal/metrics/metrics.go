// Package metrics exposes Prometheus instruments for the recommendation
// flow and the completion endpoint.
//
// Usage:
//
//	metrics.RecordRecommendation(metrics.OutcomeServed, 42, 3)
//	metrics.ObserveCompletion("gateway", err, time.Since(start))
package metrics

import (
	"errors"
	"time"

	"notehub-be/pkg/llm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeServed         = "served"
	OutcomeNoCandidates   = "no_candidates"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeRateLimited    = "rate_limited"
	OutcomeQuotaExceeded  = "quota_exceeded"
	OutcomeBadAIResponse  = "bad_ai_response"
	OutcomeFailed         = "failed"
)

var (
	// RecommendationsTotal counts recommendation requests by outcome.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notehub_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	// RecommendationCandidates tracks how many candidates reached the model.
	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notehub_recommendation_candidates",
			Help:    "Number of candidate notes sent to the completion endpoint",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 40, 50},
		},
	)

	// RecommendationResults tracks how many notes were returned after hydration.
	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notehub_recommendation_results",
			Help:    "Number of notes returned per recommendation",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	// CompletionDuration tracks completion endpoint latency.
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notehub_completion_duration_seconds",
			Help:    "Duration of completion endpoint calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		},
		[]string{"provider", "status"},
	)
)

// RecordRecommendation records one finished request.
func RecordRecommendation(outcome string, candidates, results int) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeServed || outcome == OutcomeNoCandidates {
		RecommendationCandidates.Observe(float64(candidates))
		RecommendationResults.Observe(float64(results))
	}
}

// CompletionStatus labels a completion call result.
func CompletionStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, llm.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, llm.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "empty"
	default:
		return "error"
	}
}

func ObserveCompletion(provider string, err error, elapsed time.Duration) {
	CompletionDuration.WithLabelValues(provider, CompletionStatus(err)).Observe(elapsed.Seconds())
}

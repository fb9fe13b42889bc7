package domain

import "time"

// Metric keys produced by answer scoring.
const (
	MetricRelevance        = "relevance"
	MetricSourceQuality    = "source_quality"
	MetricCitationCount    = "citation_count"
	MetricMedicalTermCount = "medical_term_count"
	MetricOverallScore     = "overall_score"
)

// EvaluationResult holds quality metrics for a generated answer.
// It is created once per scored answer and never mutated.
type EvaluationResult struct {
	// QueryID identifies the query. When not supplied by the caller it
	// is derived deterministically from the query text; the derivation
	// is collision-tolerant but NOT unique, so it must not be used as
	// a primary key.
	QueryID string

	// Query is the user's question.
	Query string

	// Answer is the generated answer that was scored.
	Answer string

	// Sources are the passage texts the answer was grounded on.
	Sources []string

	// Metrics maps metric keys to their values.
	// MetricOverallScore is always within [0, 1].
	Metrics map[string]float64

	// Feedback holds optional reviewer feedback.
	Feedback map[string]any

	// CreatedAt is when the evaluation was produced.
	CreatedAt time.Time
}

// OverallScore returns the weighted overall score, 0 when absent.
func (r EvaluationResult) OverallScore() float64 {
	return r.Metrics[MetricOverallScore]
}

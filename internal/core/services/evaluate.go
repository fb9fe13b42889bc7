package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medrag-cli/internal/logger"
)

// Weights for the overall answer score.
const (
	weightRelevance     = 0.4
	weightSourceQuality = 0.3
	weightCitations     = 0.2
	weightMedicalTerms  = 0.1
)

// medicalTermPatterns is the fixed keyword set used as a heuristic
// proxy for topical relevance. A production system would use a
// comprehensive medical dictionary.
var medicalTermPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:disease|syndrome|disorder|condition)\b`),
	regexp.MustCompile(`(?i)\b(?:medication|drug|treatment|therapy|dosage)\b`),
	regexp.MustCompile(`(?i)\b(?:diagnosis|prognosis|symptoms|signs)\b`),
	regexp.MustCompile(`(?i)\b(?:mg|ml|mcg|units)\b`),
	regexp.MustCompile(`(?i)\b(?:diabetes|hypertension|asthma|cancer|arthritis)\b`),
}

var (
	citationRe = regexp.MustCompile(`\[\d+\]`)
	wordRe     = regexp.MustCompile(`\b\w+\b`)
)

// CountMedicalTerms counts occurrences of the fixed medical keyword
// set in text, case-insensitively.
func CountMedicalTerms(text string) int {
	count := 0
	for _, pattern := range medicalTermPatterns {
		count += len(pattern.FindAllString(text, -1))
	}
	return count
}

// CitationCount counts bracketed-integer citation markers like [1].
func CitationCount(answer string) int {
	return len(citationRe.FindAllString(answer, -1))
}

// AnswerRelevance is the fraction of the query's distinct case-folded
// word tokens that appear as substrings of the case-folded answer.
// Returns 0 when the query has no tokens.
func AnswerRelevance(query, answer string) float64 {
	queryLower := strings.ToLower(query)
	answerLower := strings.ToLower(answer)

	terms := make(map[string]bool)
	for _, term := range wordRe.FindAllString(queryLower, -1) {
		terms[term] = true
	}
	if len(terms) == 0 {
		return 0.0
	}

	matches := 0
	for term := range terms {
		if strings.Contains(answerLower, term) {
			matches++
		}
	}
	return float64(matches) / float64(len(terms))
}

// SourceQuality scores the grounding sources with simple heuristics:
// per source, the mean of a length score (capped at 500 characters)
// and a medical term score (capped at 5 terms). Returns 0 for an
// empty source list.
func SourceQuality(sources []string) float64 {
	if len(sources) == 0 {
		return 0.0
	}

	total := 0.0
	for _, source := range sources {
		lengthScore := min(float64(len(source))/500, 1.0)
		termScore := min(float64(CountMedicalTerms(source))/5, 1.0)
		total += (lengthScore + termScore) / 2
	}
	return total / float64(len(sources))
}

// Score evaluates a generated answer against its query and grounding
// sources. It is total: empty queries, answers, and source lists yield
// the defined degenerate values rather than errors. The overall score
// is always within [0, 1].
//
// When queryID is empty it is derived from the query text; the
// derivation is deterministic but lossy and must not be relied on as
// a unique key.
func Score(query, answer string, sources []string, queryID string) domain.EvaluationResult {
	if queryID == "" {
		queryID = deriveQueryID(query)
	}

	relevance := AnswerRelevance(query, answer)
	sourceQuality := SourceQuality(sources)
	citations := CitationCount(answer)
	terms := CountMedicalTerms(answer)

	overall := relevance*weightRelevance +
		sourceQuality*weightSourceQuality +
		min(float64(citations)/3, 1.0)*weightCitations +
		min(float64(terms)/5, 1.0)*weightMedicalTerms

	return domain.EvaluationResult{
		QueryID: queryID,
		Query:   query,
		Answer:  answer,
		Sources: sources,
		Metrics: map[string]float64{
			domain.MetricRelevance:        relevance,
			domain.MetricSourceQuality:    sourceQuality,
			domain.MetricCitationCount:    float64(citations),
			domain.MetricMedicalTermCount: float64(terms),
			domain.MetricOverallScore:     overall,
		},
		CreatedAt: time.Now().UTC(),
	}
}

// deriveQueryID hashes the query into a short stable identifier.
func deriveQueryID(query string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(query))
	return fmt.Sprintf("query_%d", h.Sum32()%10000)
}

// EvaluationService scores answers and persists the results for
// offline monitoring. The store is optional; without it results are
// computed but not kept.
type EvaluationService struct {
	store driven.EvaluationStore
}

// NewEvaluationService creates an evaluation service.
func NewEvaluationService(store driven.EvaluationStore) *EvaluationService {
	return &EvaluationService{store: store}
}

// Evaluate scores an answer and saves the result when a store is
// configured.
func (s *EvaluationService) Evaluate(
	ctx context.Context, query, answer string, sources []string, queryID string,
) (domain.EvaluationResult, error) {
	result := Score(query, answer, sources, queryID)
	logger.Debug("Scored %s: overall=%.3f", result.QueryID, result.OverallScore())

	if s.store != nil {
		if err := s.store.Save(ctx, result); err != nil {
			return result, fmt.Errorf("save evaluation: %w", err)
		}
	}
	return result, nil
}

// List returns stored evaluations, newest first.
func (s *EvaluationService) List(ctx context.Context, limit int) ([]domain.EvaluationResult, error) {
	if s.store == nil {
		return nil, domain.ErrNotFound
	}
	return s.store.List(ctx, limit)
}

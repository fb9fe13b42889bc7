package services

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
)

func TestScore_RelevantAnswer(t *testing.T) {
	result := Score(
		"What are the symptoms of diabetes?",
		"Symptoms of diabetes include increased thirst and frequent urination.",
		[]string{"Diabetes symptoms include increased thirst and frequent urination."},
		"",
	)

	relevance := result.Metrics[domain.MetricRelevance]
	assert.Greater(t, relevance, 0.5, "most query tokens appear in the answer")

	overall := result.OverallScore()
	assert.Greater(t, overall, 0.0)
	assert.Less(t, overall, 1.0)
}

func TestScore_Degenerate(t *testing.T) {
	result := Score("", "", nil, "")
	assert.Zero(t, result.Metrics[domain.MetricRelevance])
	assert.Zero(t, result.Metrics[domain.MetricSourceQuality])
	assert.Zero(t, result.Metrics[domain.MetricCitationCount])
	assert.Zero(t, result.OverallScore())
}

func TestScore_Citations(t *testing.T) {
	result := Score("q", "Per guidelines [1] and the trial data [2], dosage is unchanged [3].", nil, "id")
	assert.Equal(t, 3.0, result.Metrics[domain.MetricCitationCount])

	result = Score("q", "No citations here.", nil, "id")
	assert.Zero(t, result.Metrics[domain.MetricCitationCount])
}

func TestScore_QueryIDDerivation(t *testing.T) {
	a := Score("same query", "answer", nil, "")
	b := Score("same query", "different answer", nil, "")
	assert.Equal(t, a.QueryID, b.QueryID, "derived query ID is deterministic")
	assert.True(t, strings.HasPrefix(a.QueryID, "query_"))

	c := Score("same query", "answer", nil, "explicit-id")
	assert.Equal(t, "explicit-id", c.QueryID)
}

func TestScore_OverallAlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	words := []string{"diabetes", "mg", "treatment", "[1]", "watermelon", "the", "dosage", "x", ""}

	randomText := func(n int) string {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = words[rng.Intn(len(words))]
		}
		return strings.Join(parts, " ")
	}

	for i := 0; i < 200; i++ {
		sources := make([]string, rng.Intn(4))
		for j := range sources {
			sources[j] = randomText(rng.Intn(200))
		}
		result := Score(randomText(rng.Intn(12)), randomText(rng.Intn(80)), sources, "")

		overall := result.OverallScore()
		require.GreaterOrEqual(t, overall, 0.0)
		require.LessOrEqual(t, overall, 1.0)
		require.GreaterOrEqual(t, result.Metrics[domain.MetricCitationCount], 0.0)
		require.GreaterOrEqual(t, result.Metrics[domain.MetricMedicalTermCount], 0.0)
	}
}

func TestAnswerRelevance(t *testing.T) {
	assert.Equal(t, 1.0, AnswerRelevance("diabetes symptoms", "Diabetes symptoms are varied."))
	assert.Equal(t, 0.0, AnswerRelevance("", "anything"))
	assert.Equal(t, 0.0, AnswerRelevance("?!", "tokenless query"))
}

func TestSourceQuality(t *testing.T) {
	assert.Zero(t, SourceQuality(nil))

	// A long source dense in medical terms approaches 1.0
	rich := strings.Repeat("The medication dosage for diabetes treatment follows diagnosis. ", 10)
	assert.Greater(t, SourceQuality([]string{rich}), 0.9)

	// A short term-free source scores low
	assert.Less(t, SourceQuality([]string{"tiny"}), 0.1)
}

func TestCountMedicalTerms(t *testing.T) {
	assert.Equal(t, 0, CountMedicalTerms("nothing to see"))
	assert.Equal(t, 3, CountMedicalTerms("diabetes treatment with 500 mg"))
}

func TestEvaluationService_Evaluate(t *testing.T) {
	store := &mockEvaluationStore{}
	svc := NewEvaluationService(store)

	result, err := svc.Evaluate(context.Background(), "What is hypertension?", "Hypertension is high blood pressure.", nil, "")
	require.NoError(t, err)
	require.Len(t, store.saved, 1)
	assert.Equal(t, result.QueryID, store.saved[0].QueryID)
}

func TestEvaluationService_NoStore(t *testing.T) {
	svc := NewEvaluationService(nil)

	result, err := svc.Evaluate(context.Background(), "q", "a", nil, "")
	require.NoError(t, err, "scoring works without a store")
	assert.NotEmpty(t, result.QueryID)

	_, err = svc.List(context.Background(), 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

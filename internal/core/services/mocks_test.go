package services

import (
	"context"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	vector     []float32
	embedErr   error
	dimensions int
	embedCalls []string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.embedCalls = append(m.embedCalls, text)
	return m.vector, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dimensions == 0 {
		return len(m.vector)
	}
	return m.dimensions
}

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	hits        []driven.VectorHit
	searchErr   error
	upsertErr   error
	ensureErr   error
	ensuredDims int
	upserted    []driven.VectorPoint
}

func (m *mockVectorIndex) EnsureCollection(_ context.Context, dimensions int) error {
	if m.ensureErr != nil {
		return m.ensureErr
	}
	m.ensuredDims = dimensions
	return nil
}

func (m *mockVectorIndex) Drop(_ context.Context) error { return nil }

func (m *mockVectorIndex) Upsert(_ context.Context, points []driven.VectorPoint) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, points...)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response    string
	generateErr error
	prompts     []string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	m.prompts = append(m.prompts, prompt)
	return m.response, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockEvaluationStore implements driven.EvaluationStore for testing.
type mockEvaluationStore struct {
	saved   []domain.EvaluationResult
	saveErr error
}

func (m *mockEvaluationStore) Save(_ context.Context, result domain.EvaluationResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, result)
	return nil
}

func (m *mockEvaluationStore) List(_ context.Context, limit int) ([]domain.EvaluationResult, error) {
	if limit <= 0 || limit > len(m.saved) {
		limit = len(m.saved)
	}
	return m.saved[:limit], nil
}

func (m *mockEvaluationStore) Close() error { return nil }

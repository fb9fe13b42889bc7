package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medrag-cli/internal/logger"
)

// DefaultTopK is the default retrieval fan-out.
const DefaultTopK = 5

// answerTemplate frames the assistant's role, instructs refusal when
// the context is insufficient, and places the context before the
// question. The model's output is returned unmodified; no
// post-filtering of hallucinated content happens here.
const answerTemplate = `You are a medical assistant answering questions from a curated corpus of medical documents.
Use the following context to answer the question. If you don't know the answer or the context doesn't provide the necessary information,
say "I don't have enough information to answer this question accurately" instead of making up an answer.

Context:
%s

Question: %s

Answer:`

// QueryService implements the retrieve-then-generate flow: embed the
// query, search the vector index, build a grounding prompt, generate.
// Embedding, search, and generation are I/O-bound collaborator calls;
// the service holds no mutable state and imposes no timeouts of its
// own, callers bound the context.
type QueryService struct {
	embedding driven.EmbeddingService
	vector    driven.VectorIndex
	llm       driven.LLMService
	generate  driven.GenerateOptions
}

// NewQueryService creates a query service.
func NewQueryService(
	embedding driven.EmbeddingService,
	vector driven.VectorIndex,
	llm driven.LLMService,
	generate driven.GenerateOptions,
) *QueryService {
	return &QueryService{
		embedding: embedding,
		vector:    vector,
		llm:       llm,
		generate:  generate,
	}
}

// Retrieve returns up to k passages ordered by descending similarity
// as reported by the index. Fewer than k available passages is not an
// error. Ties keep the index's native order.
func (s *QueryService) Retrieve(ctx context.Context, query string, k int) ([]domain.Passage, error) {
	if k < 1 {
		k = DefaultTopK
	}

	vector, err := s.embedding.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", domain.ErrProcessingFailed, err)
	}

	hits, err := s.vector.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("%w: vector search: %v", domain.ErrProcessingFailed, err)
	}
	logger.Debug("Retrieved %d passages for k=%d", len(hits), k)

	passages := make([]domain.Passage, 0, len(hits))
	for _, hit := range hits {
		passages = append(passages, domain.Passage{
			Content: hit.Content,
			Source:  hit.Source,
			Score:   hit.Score,
		})
	}
	return passages, nil
}

// Compose builds the grounding prompt from the passages (in the order
// given, separated by blank lines) and delegates generation to the
// language model, returning its raw output.
func (s *QueryService) Compose(ctx context.Context, query string, passages []domain.Passage) (string, error) {
	contents := make([]string, 0, len(passages))
	for _, p := range passages {
		contents = append(contents, p.Content)
	}
	prompt := fmt.Sprintf(answerTemplate, strings.Join(contents, "\n\n"), query)

	answer, err := s.llm.Generate(ctx, prompt, s.generate)
	if err != nil {
		return "", fmt.Errorf("%w: generate answer: %v", domain.ErrProcessingFailed, err)
	}
	return answer, nil
}

// Ask runs the full query path: retrieve top-k passages, then compose
// and generate an answer grounded on them.
func (s *QueryService) Ask(ctx context.Context, query string, k int) (domain.Answer, error) {
	logger.Section("Query Execution")
	logger.Debug("Query: %q", query)

	passages, err := s.Retrieve(ctx, query, k)
	if err != nil {
		return domain.Answer{}, err
	}

	text, err := s.Compose(ctx, query, passages)
	if err != nil {
		return domain.Answer{}, err
	}

	return domain.Answer{Text: text, Passages: passages}, nil
}

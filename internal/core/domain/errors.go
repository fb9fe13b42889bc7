package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed ingestion input, such as a
	// document with no content. Raised before any processing happens.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProcessingFailed indicates a retrieval or generation
	// collaborator call failed. The core performs no retries; callers
	// layer their own resilience on top.
	ErrProcessingFailed = errors.New("processing failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// reachable. Ingestion and semantic retrieval are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the language model service is not
	// reachable. Answer generation is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// reachable. Ingestion and retrieval are disabled.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)

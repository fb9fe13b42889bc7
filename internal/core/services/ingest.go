package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medrag-cli/internal/logger"
	"github.com/custodia-labs/medrag-cli/internal/pipeline"
)

// IngestService runs the ingestion path for documents: assemble into
// chunks, embed the chunk texts, write the points to the vector index.
// Documents are independent; callers may ingest multiple documents
// concurrently with no coordination.
type IngestService struct {
	assembler *pipeline.Assembler
	embedding driven.EmbeddingService
	vector    driven.VectorIndex
}

// NewIngestService creates an ingest service.
func NewIngestService(
	assembler *pipeline.Assembler,
	embedding driven.EmbeddingService,
	vector driven.VectorIndex,
) *IngestService {
	return &IngestService{
		assembler: assembler,
		embedding: embedding,
		vector:    vector,
	}
}

// EnsureCollection creates the index collection for the configured
// embedding dimensionality if it does not exist.
func (s *IngestService) EnsureCollection(ctx context.Context) error {
	if err := s.vector.EnsureCollection(ctx, s.embedding.Dimensions()); err != nil {
		return fmt.Errorf("%w: ensure collection: %v", domain.ErrProcessingFailed, err)
	}
	return nil
}

// IngestDocument processes one raw document and indexes its chunks.
// Returns the number of chunks written. Validation failures surface
// as domain.ErrInvalidInput before any collaborator is called.
func (s *IngestService) IngestDocument(ctx context.Context, raw domain.RawDocument) (int, error) {
	_, chunks, err := s.assembler.Assemble(raw)
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	logger.Debug("Assembled %d chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := s.embedding.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("%w: embed chunks: %v", domain.ErrProcessingFailed, err)
	}

	points := make([]driven.VectorPoint, len(chunks))
	for i, chunk := range chunks {
		source, _ := chunk.Metadata["source"].(string)
		points[i] = driven.VectorPoint{
			ID:         chunk.ID,
			Vector:     vectors[i],
			Content:    chunk.Content,
			Source:     source,
			ChunkIndex: chunk.Index,
			Metadata:   chunk.Metadata,
		}
	}

	if err := s.vector.Upsert(ctx, points); err != nil {
		return 0, fmt.Errorf("%w: upsert points: %v", domain.ErrProcessingFailed, err)
	}

	return len(chunks), nil
}

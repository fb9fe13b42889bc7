// Package pipeline assembles raw documents into indexable chunk
// records: normalise, tag entities, chunk, attach metadata.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/pipeline/chunker"
	"github.com/custodia-labs/medrag-cli/internal/pipeline/entities"
	"github.com/custodia-labs/medrag-cli/internal/pipeline/normaliser"
)

// MetadataEntities is the metadata key holding the extracted EntitySet.
const MetadataEntities = "extracted_entities"

// MetadataChunk is the metadata key holding a chunk's ordinal index.
const MetadataChunk = "chunk"

// Assembler runs the ingestion pipeline for one document. All stages
// are pure and synchronous; an Assembler is safe for concurrent use
// over independent documents.
type Assembler struct {
	normaliser *normaliser.Normaliser
	tagger     *entities.Tagger
	chunker    *chunker.Chunker
}

// Option configures the assembler.
type Option func(*Assembler)

// WithChunker replaces the default chunker.
func WithChunker(c *chunker.Chunker) Option {
	return func(a *Assembler) {
		a.chunker = c
	}
}

// WithNormaliser replaces the default normaliser.
func WithNormaliser(n *normaliser.Normaliser) Option {
	return func(a *Assembler) {
		a.normaliser = n
	}
}

// New creates an assembler with default stages.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		normaliser: normaliser.New(),
		tagger:     entities.New(),
		chunker:    chunker.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble validates and processes a raw document, returning the
// normalised document and its chunk records. Chunk indices are
// contiguous from 0; each chunk carries a shallow copy of the
// document's metadata plus its own index. Identical chunk text across
// documents is not deduplicated.
func (a *Assembler) Assemble(raw domain.RawDocument) (domain.Document, []domain.Chunk, error) {
	if raw.Content == "" {
		return domain.Document{}, nil, fmt.Errorf("%w: document has no content", domain.ErrInvalidInput)
	}

	content := a.normaliser.Clean(raw.Content)

	metadata := make(map[string]any, len(raw.Metadata)+1)
	for k, v := range raw.Metadata {
		metadata[k] = v
	}
	metadata[MetadataEntities] = a.tagger.Extract(content)

	doc := domain.Document{Content: content, Metadata: metadata}

	texts := a.chunker.Chunk(content)
	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		chunkMeta := make(map[string]any, len(metadata)+1)
		for k, v := range metadata {
			chunkMeta[k] = v
		}
		chunkMeta[MetadataChunk] = i

		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Content:  text,
			Index:    i,
			Metadata: chunkMeta,
		})
	}

	return doc, chunks, nil
}

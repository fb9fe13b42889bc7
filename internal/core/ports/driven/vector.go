package driven

import "context"

// VectorIndex provides vector storage and similarity search.
// The backing collection uses a fixed dimensionality and cosine
// similarity; persistence is owned entirely by the index.
type VectorIndex interface {
	// EnsureCollection creates the backing collection with the given
	// vector dimensionality and a cosine metric if it does not exist.
	EnsureCollection(ctx context.Context, dimensions int) error

	// Drop removes the backing collection if it exists.
	Drop(ctx context.Context) error

	// Upsert writes points (content + vector + metadata) to the index.
	Upsert(ctx context.Context, points []VectorPoint) error

	// Search returns up to k hits ordered by descending similarity
	// score. Ties are broken by the index's native order, which is
	// unspecified. Fewer than k hits is not an error.
	Search(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorPoint is a unit written to the index.
type VectorPoint struct {
	// ID is the point identifier.
	ID string

	// Vector is the embedding for Content.
	Vector []float32

	// Content is the chunk text stored as payload.
	Content string

	// Source identifies the originating document.
	Source string

	// ChunkIndex is the chunk's ordinal position within its document.
	ChunkIndex int

	// Metadata carries the chunk's remaining metadata (extracted
	// entities, document attributes) into the index payload.
	Metadata map[string]any
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// Content is the stored chunk text.
	Content string

	// Source identifies the originating document.
	Source string

	// Score is the cosine similarity reported by the index.
	Score float64
}

package domain

// RawDocument represents ingested content before any processing.
// It is created at the ingestion boundary and never mutated afterwards.
type RawDocument struct {
	// Content is the full text content as decoded at the boundary.
	Content string

	// Metadata contains arbitrary key-value pairs (source, title, etc).
	Metadata map[string]any
}

// Document is a document after text normalisation.
// Its metadata carries the extracted entities under the
// "extracted_entities" key. A Document is owned by the ingestion
// call that produced it and is not shared across calls.
type Document struct {
	// Content is the cleaned text content before chunking.
	Content string

	// Metadata is the raw document's metadata plus extraction results.
	Metadata map[string]any
}

// Chunk is an indexable unit carved from a document.
// Indices are contiguous, zero-based, and unique within one document.
type Chunk struct {
	// ID is the unique identifier used as the vector index point ID.
	ID string

	// Content is the text content of this chunk.
	Content string

	// Index is the ordinal position within the document.
	Index int

	// Metadata is a shallow copy of the owning document's metadata
	// plus the "chunk" key holding Index.
	Metadata map[string]any
}

// EntitySet holds medical entities extracted from document text.
// Slices may be empty but never contain empty strings; entries appear
// in order of first occurrence in the source text.
type EntitySet struct {
	Medications  []string `json:"medications"`
	Conditions   []string `json:"conditions"`
	Measurements []string `json:"measurements"`
}

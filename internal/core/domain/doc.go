// Package domain defines the core business entities for medrag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Ingested content before any processing
//   - Document: A document after text normalisation
//   - Chunk: An indexable unit carved from a document
//   - EntitySet: Medical entities extracted from document text
//   - Passage: A retrieved excerpt with its similarity score
//   - EvaluationResult: Quality metrics for a generated answer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

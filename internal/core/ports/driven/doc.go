// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them. The collaborators behind these ports are external
// systems whose internals are outside the core's responsibility:
//
//   - EmbeddingService: Generates vector embeddings (Ollama)
//   - VectorIndex: Stores and searches vectors (Qdrant)
//   - LLMService: Generates answer text (Ollama)
//   - EvaluationStore: Persists answer evaluations (SQLite)
//
// Embedding, vector index, and LLM handles are expensive to construct
// and long-lived; the CLI builds each one at most once behind an
// initialise-once guard and reuses it for the process lifetime.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

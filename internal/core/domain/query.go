package domain

// Passage is a retrieved excerpt returned by similarity search.
// Passages are ephemeral, scoped to a single query.
type Passage struct {
	// Content is the chunk text stored in the vector index.
	Content string

	// Source identifies the document the passage came from.
	Source string

	// Score is the similarity score reported by the index,
	// higher is more similar.
	Score float64
}

// Answer is the result of a retrieve-then-generate query.
type Answer struct {
	// Text is the language model's output, returned unmodified.
	Text string

	// Passages are the retrieved excerpts used as grounding context,
	// in descending score order.
	Passages []Passage
}

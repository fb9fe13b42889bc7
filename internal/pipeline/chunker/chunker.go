// Package chunker splits normalised text into overlapping,
// size-bounded segments along sentence boundaries.
package chunker

import "strings"

// DefaultChunkSize is the default maximum chunk size in characters.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default overlap budget in characters.
const DefaultChunkOverlap = 50

// Chunker accumulates whole sentences into chunks of at most chunkSize
// characters and seeds each new chunk with the trailing sentences of
// the previous one, up to the overlap budget.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap budget in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// An overlap at or above the chunk size would re-seed every chunk
	// with itself; clamp rather than loop.
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits text into overlapping chunks. Text no longer than the
// chunk size is returned as a single chunk. Chunks are never empty and
// appear in source order.
//
// A single sentence longer than the chunk size is never split further;
// it is emitted inside its own oversized chunk, so output chunks are
// not strictly bounded by the configured size.
func (c *Chunker) Chunk(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.chunkSize {
		return []string{text}
	}

	sentences := splitSentences(text)

	var chunks []string
	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		if currentLen+len(sentence) > c.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current, currentLen = c.overlapTail(current)
		}
		current = append(current, sentence)
		currentLen += len(sentence) + 1 // +1 for the joining space
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// overlapTail walks a closed chunk's sentences from the end backward,
// keeping sentences while their cumulative length stays within the
// overlap budget. Sentences are never cut to fit: the first sentence
// that would exceed the budget is discarded along with everything
// before it.
func (c *Chunker) overlapTail(closed []string) ([]string, int) {
	start := len(closed)
	length := 0
	for i := len(closed) - 1; i >= 0; i-- {
		if length+len(closed[i]) > c.overlap {
			break
		}
		length += len(closed[i]) + 1
		start = i
	}

	tail := make([]string, len(closed)-start)
	copy(tail, closed[start:])
	return tail, length
}

// splitSentences breaks text into sentence-like segments at `.`, `!`
// or `?` followed by whitespace. The whitespace is consumed; a final
// segment without a trailing terminator is still included.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if i+1 < len(text) && isSpace(text[i+1]) {
				sentences = append(sentences, text[start:i+1])
				j := i + 1
				for j < len(text) && isSpace(text[j]) {
					j++
				}
				start = j
				i = j - 1
			}
		}
	}

	if start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize || c.overlap != DefaultChunkOverlap {
			t.Errorf("expected defaults, got size=%d overlap=%d", c.chunkSize, c.overlap)
		}
	})

	t.Run("overlap at or above chunk size is clamped", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.overlap >= c.chunkSize {
			t.Errorf("overlap %d should be clamped below chunk size %d", c.overlap, c.chunkSize)
		}
	})
}

func TestChunk_Empty(t *testing.T) {
	c := New()
	if chunks := c.Chunk(""); chunks != nil {
		t.Errorf("expected nil for empty text, got %v", chunks)
	}
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20))
	text := "A short note. Fits in one chunk."
	chunks := c.Chunk(text)
	if len(chunks) != 1 || chunks[0] != text {
		t.Errorf("expected [%q], got %v", text, chunks)
	}
}

func TestChunk_SplitsOnSentences(t *testing.T) {
	c := New(WithChunkSize(30), WithOverlap(10))
	text := "This is a test document. It contains multiple sentences. We need to split it into chunks. This is the end."

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if !strings.HasPrefix(chunks[0], "This is a test document") {
		t.Errorf("first chunk should start with the first sentence, got %q", chunks[0])
	}
	for i, chunk := range chunks {
		if chunk == "" {
			t.Fatalf("chunk %d is empty", i)
		}
	}
	if chunks[len(chunks)-1] != "This is the end." {
		t.Errorf("last chunk should be the final sentence, got %q", chunks[len(chunks)-1])
	}
}

func TestChunk_OverlapSeedsNextChunk(t *testing.T) {
	c := New(WithChunkSize(14), WithOverlap(7))
	chunks := c.Chunk("A b c. D e f. G h i. J k l.")

	want := []string{"A b c. D e f.", "D e f. G h i.", "G h i. J k l."}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %v", len(want), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], chunks[i])
		}
	}
}

func TestChunk_ConsecutiveChunksShareTokens(t *testing.T) {
	c := New(WithChunkSize(60), WithOverlap(30))
	text := strings.TrimSpace(strings.Repeat("The dose was adjusted. Symptoms improved slowly. ", 6))

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := tokenSet(chunks[i-1])
		shared := false
		for _, tok := range strings.Fields(chunks[i]) {
			if prev[strings.ToLower(tok)] {
				shared = true
				break
			}
		}
		if !shared {
			t.Errorf("chunks %d and %d share no token:\n%q\n%q", i-1, i, chunks[i-1], chunks[i])
		}
	}
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[strings.ToLower(tok)] = true
	}
	return set
}

func TestChunk_OversizedSentenceNeverSplit(t *testing.T) {
	c := New(WithChunkSize(30), WithOverlap(5))
	long := strings.Repeat("word ", 16) + "end." // well over the chunk size
	text := "Short one. " + long + " Tail."

	chunks := c.Chunk(text)
	found := false
	for _, chunk := range chunks {
		if strings.Contains(chunk, long) {
			found = true
		}
		if chunk == "" {
			t.Fatal("produced an empty chunk")
		}
	}
	if !found {
		t.Errorf("oversized sentence should be emitted intact, got %v", chunks)
	}
}

func TestChunk_NoPartialSentenceOverlap(t *testing.T) {
	c := New(WithChunkSize(25), WithOverlap(4))
	// Every sentence is longer than the overlap budget, so no overlap
	// sentences can be kept and chunks must not repeat content.
	chunks := c.Chunk("First sentence here. Second sentence here. Third sentence here.")
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %v", chunks)
	}
	joined := strings.Join(chunks, " ")
	if strings.Count(joined, "First") != 1 || strings.Count(joined, "Second") != 1 {
		t.Errorf("no sentence should be duplicated when overlap cannot fit one: %v", chunks)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	want := []string{"One.", "Two!", "Three?", "Four"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	// A terminator not followed by whitespace does not split
	got = splitSentences("Version 2.5 is out. Done.")
	if len(got) != 2 || got[0] != "Version 2.5 is out." {
		t.Errorf("decimal point should not split, got %v", got)
	}
}

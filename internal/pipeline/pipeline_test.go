package pipeline

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/pipeline/chunker"
)

func TestAssemble_MissingContent(t *testing.T) {
	a := New()
	_, _, err := a.Assemble(domain.RawDocument{Metadata: map[string]any{"source": "x"}})
	if err == nil {
		t.Fatal("expected validation error for empty content")
	}
	if got := err.Error(); got == "" {
		t.Error("error should carry a message")
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAssemble_ChunkIndicesContiguous(t *testing.T) {
	a := New(WithChunker(chunker.New(chunker.WithChunkSize(30), chunker.WithOverlap(10))))
	raw := domain.RawDocument{
		Content:  "This is a test document. It contains multiple sentences. We need to split it into chunks. This is the end.",
		Metadata: map[string]any{"source": "note.txt", "title": "Note"},
	}

	_, chunks, err := a.Assemble(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d, indices must be contiguous from 0", i, chunk.Index)
		}
		if chunk.Content == "" {
			t.Errorf("chunk %d has empty content", i)
		}
		if chunk.ID == "" {
			t.Errorf("chunk %d has no ID", i)
		}
		if chunk.Metadata[MetadataChunk] != i {
			t.Errorf("chunk %d metadata chunk key = %v", i, chunk.Metadata[MetadataChunk])
		}
		if chunk.Metadata["source"] != "note.txt" {
			t.Errorf("chunk %d lost document metadata", i)
		}
	}
}

func TestAssemble_MetadataCopiedNotShared(t *testing.T) {
	a := New(WithChunker(chunker.New(chunker.WithChunkSize(30), chunker.WithOverlap(10))))
	raw := domain.RawDocument{
		Content:  "First sentence here. Second sentence here. Third sentence here.",
		Metadata: map[string]any{"source": "a.txt"},
	}

	_, chunks, err := a.Assemble(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	chunks[0].Metadata["source"] = "mutated"
	if chunks[1].Metadata["source"] != "a.txt" {
		t.Error("chunk metadata maps must be independent copies")
	}
	if raw.Metadata["source"] != "a.txt" {
		t.Error("raw document metadata must not be mutated")
	}
}

func TestAssemble_ExtractsEntities(t *testing.T) {
	a := New()
	doc, chunks, err := a.Assemble(domain.RawDocument{
		Content:  "Patient on Metformin tablets for diabetes. Weight 70kg.",
		Metadata: map[string]any{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	set, ok := doc.Metadata[MetadataEntities].(domain.EntitySet)
	if !ok {
		t.Fatalf("expected EntitySet in document metadata, got %T", doc.Metadata[MetadataEntities])
	}
	if len(set.Medications) == 0 || len(set.Conditions) == 0 || len(set.Measurements) == 0 {
		t.Errorf("expected entities in all categories, got %+v", set)
	}

	if len(chunks) != 1 {
		t.Fatalf("short document should produce a single chunk, got %d", len(chunks))
	}
	if _, ok := chunks[0].Metadata[MetadataEntities]; !ok {
		t.Error("chunk metadata should carry the extracted entities")
	}
}

func TestDecodeText(t *testing.T) {
	if got := DecodeText([]byte("plain utf-8")); got != "plain utf-8" {
		t.Errorf("utf-8 content should pass through, got %q", got)
	}

	// Latin-1 encoded "café"
	latin1 := []byte{'c', 'a', 'f', 0xE9}
	if got := DecodeText(latin1); got != "café" {
		t.Errorf("expected latin-1 fallback to produce %q, got %q", "café", got)
	}
}

func TestDecodeText_AlwaysValidUTF8(t *testing.T) {
	// The fallback is total: any byte sequence decodes without loss.
	inputs := [][]byte{
		{0xFF, 0xFE, 0x00, 0x80},
		{0xC3}, // truncated multi-byte sequence
		{0xE9, 0xE9, 0xE9},
	}
	for _, input := range inputs {
		got := DecodeText(input)
		if !utf8.ValidString(got) {
			t.Errorf("DecodeText(%v) produced invalid utf-8 %q", input, got)
		}
		if len(got) == 0 {
			t.Errorf("DecodeText(%v) dropped all bytes", input)
		}
	}
}

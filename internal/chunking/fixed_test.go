package chunking

import (
	"strings"
	"testing"
)

func TestNewFixedSize(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := NewFixedSize()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, c.overlap)
		}
	})

	t.Run("custom options", func(t *testing.T) {
		c := NewFixedSize(WithChunkSize(100), WithOverlap(10))
		if c.chunkSize != 100 {
			t.Errorf("expected chunkSize 100, got %d", c.chunkSize)
		}
		if c.overlap != 10 {
			t.Errorf("expected overlap 10, got %d", c.overlap)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		c := NewFixedSize(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.chunkSize)
		}
		if c.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", c.overlap)
		}
	})
}

func TestFixedSize_Chunk_Empty(t *testing.T) {
	c := NewFixedSize()
	fragments, err := c.Chunk("", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("expected 0 fragments for empty text, got %d", len(fragments))
	}

	fragments, err = c.Chunk("   \n\t  ", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("expected 0 fragments for whitespace text, got %d", len(fragments))
	}
}

func TestFixedSize_Chunk_Small(t *testing.T) {
	c := NewFixedSize()
	fragments, err := c.Chunk("a small piece of text", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	if fragments[0].Text != "a small piece of text" {
		t.Errorf("unexpected fragment text: %q", fragments[0].Text)
	}
	if fragments[0].Ordinal != 0 {
		t.Errorf("expected ordinal 0, got %d", fragments[0].Ordinal)
	}
	if fragments[0].DocumentID != "doc-1" {
		t.Errorf("expected document id doc-1, got %q", fragments[0].DocumentID)
	}
	if fragments[0].ID == "" {
		t.Error("expected a generated fragment id")
	}
}

// Words unique per position so overlap regions are identifiable.
func numberedWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word" + strings.Repeat("x", i%7) + string(rune('a'+i%26))
	}
	return words
}

func TestFixedSize_Chunk_OverlapAndReconstruction(t *testing.T) {
	const overlap = 5
	c := NewFixedSize(WithChunkSize(80), WithOverlap(overlap))
	words := numberedWords(120)
	text := strings.Join(words, " ")

	fragments, err := c.Chunk(text, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) < 2 {
		t.Fatalf("expected multiple fragments, got %d", len(fragments))
	}

	// Consecutive fragments share exactly min(overlap, len(prev)) leading words.
	for i := 1; i < len(fragments); i++ {
		prev := strings.Fields(fragments[i-1].Text)
		curr := strings.Fields(fragments[i].Text)
		want := overlap
		if len(prev) < want {
			want = len(prev)
		}
		if len(curr) < want {
			t.Fatalf("fragment %d shorter than overlap", i)
		}
		for j := 0; j < want; j++ {
			if curr[j] != prev[len(prev)-want+j] {
				t.Fatalf("fragment %d word %d: expected overlap word %q, got %q",
					i, j, prev[len(prev)-want+j], curr[j])
			}
		}
	}

	// Dropping each fragment's overlap prefix reconstructs the input.
	var rebuilt []string
	for i, f := range fragments {
		fw := strings.Fields(f.Text)
		if i == 0 {
			rebuilt = append(rebuilt, fw...)
			continue
		}
		prev := strings.Fields(fragments[i-1].Text)
		skip := overlap
		if len(prev) < skip {
			skip = len(prev)
		}
		rebuilt = append(rebuilt, fw[skip:]...)
	}
	if strings.Join(rebuilt, " ") != text {
		t.Error("reconstructed word sequence does not match input")
	}

	// Window size counts each word as its length plus one separator,
	// so emitted text is at most chunkSize-1 characters.
	for i, f := range fragments {
		if len(f.Text) >= 80 {
			t.Errorf("fragment %d exceeds size limit: %d chars", i, len(f.Text))
		}
	}

	// Ordinals are sequential.
	for i, f := range fragments {
		if f.Ordinal != i {
			t.Errorf("fragment %d has ordinal %d", i, f.Ordinal)
		}
	}
}

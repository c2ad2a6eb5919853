package chunking

import (
	"strings"
	"testing"
)

func TestSentenceBound_Chunk_Empty(t *testing.T) {
	c := NewSentenceBound()
	fragments, err := c.Chunk("", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("expected 0 fragments for empty text, got %d", len(fragments))
	}

	fragments, err = c.Chunk("...!!!???", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 0 {
		t.Errorf("expected 0 fragments for punctuation-only text, got %d", len(fragments))
	}
}

func TestSentenceBound_Chunk_SingleWindow(t *testing.T) {
	c := NewSentenceBound()
	fragments, err := c.Chunk("First sentence. Second one! Third?", "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	want := "First sentence. Second one. Third."
	if fragments[0].Text != want {
		t.Errorf("expected %q, got %q", want, fragments[0].Text)
	}
}

func TestSentenceBound_Chunk_Properties(t *testing.T) {
	sentences := []string{
		"The quick brown fox jumps over the lazy dog",
		"Pack my box with five dozen liquor jugs",
		"How vexingly quick daft zebras jump",
		"Sphinx of black quartz judge my vow",
		"The five boxing wizards jump quickly",
		"Jackdaws love my big sphinx of quartz",
	}
	text := strings.Join(sentences, ". ") + "."

	c := NewSentenceBound(WithChunkSize(100))
	fragments, err := c.Chunk(text, "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fragments) < 2 {
		t.Fatalf("expected multiple fragments, got %d", len(fragments))
	}

	// Every fragment ends with a period.
	for i, f := range fragments {
		if !strings.HasSuffix(f.Text, ".") {
			t.Errorf("fragment %d does not end with a period: %q", i, f.Text)
		}
	}

	// No sentence is dropped and none is split across fragments.
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Text
	}
	joined := strings.Join(texts, " ")
	for _, s := range sentences {
		if !strings.Contains(joined, s) {
			t.Errorf("sentence missing from output: %q", s)
		}
	}

	// No overlap in this mode: each sentence appears exactly once.
	for _, s := range sentences {
		if strings.Count(joined, s) != 1 {
			t.Errorf("sentence duplicated across fragments: %q", s)
		}
	}
}

package chunking

import (
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

// DefaultChunkSize is the default window size in characters.
const DefaultChunkSize = 512

// DefaultChunkOverlap is the default number of words carried over
// between consecutive windows.
const DefaultChunkOverlap = 50

// Ensure FixedSize implements the interface.
var _ driven.Chunker = (*FixedSize)(nil)

// FixedSize accumulates whitespace-separated words into windows of at
// most chunkSize characters. Each window after the first starts with
// the last overlap words of the window before it.
type FixedSize struct {
	chunkSize int
	overlap   int
}

// NewFixedSize creates a fixed-size chunker with the given options.
func NewFixedSize(opts ...Option) *FixedSize {
	s := newSettings(opts)
	return &FixedSize{
		chunkSize: s.chunkSize,
		overlap:   s.overlap,
	}
}

// Name returns the strategy key.
func (c *FixedSize) Name() string {
	return StrategyFixedSize
}

// Chunk splits text into overlapping word windows. A word is counted
// as its length plus one separator character. The trailing partial
// window is always emitted.
func (c *FixedSize) Chunk(text, documentID string) ([]domain.Fragment, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	var fragments []domain.Fragment
	var current []string
	size := 0

	emit := func() {
		fragments = append(fragments, domain.Fragment{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Text:       strings.Join(current, " "),
			Ordinal:    len(fragments),
			Metadata:   make(map[string]any),
		})
	}

	for _, word := range words {
		wordSize := len(word) + 1

		if size+wordSize > c.chunkSize && len(current) > 0 {
			emit()

			// Seed the next window with the tail of this one.
			var carried []string
			if c.overlap > 0 {
				start := len(current) - c.overlap
				if start < 0 {
					start = 0
				}
				carried = append(carried, current[start:]...)
			}
			current = append(carried, word)
			size = 0
			for _, w := range current {
				size += len(w) + 1
			}
		} else {
			current = append(current, word)
			size += wordSize
		}
	}

	if len(current) > 0 {
		emit()
	}

	return fragments, nil
}

package chunking

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

// Ensure SentenceBound implements the interface.
var _ driven.Chunker = (*SentenceBound)(nil)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// SentenceBound packs whole sentences into windows of at most
// chunkSize characters. Windows never split a sentence and carry no
// overlap; each emitted fragment is the window's sentences rejoined
// with ". " and a trailing period.
type SentenceBound struct {
	chunkSize int
}

// NewSentenceBound creates a sentence-bounded chunker with the given
// options. Overlap options are ignored; this strategy has none.
func NewSentenceBound(opts ...Option) *SentenceBound {
	s := newSettings(opts)
	return &SentenceBound{chunkSize: s.chunkSize}
}

// Name returns the strategy key.
func (c *SentenceBound) Name() string {
	return StrategySemantic
}

// Chunk splits text on sentence-terminal punctuation and greedily
// packs sentences while the cumulative length stays within the window.
// The trailing partial window is always emitted.
func (c *SentenceBound) Chunk(text, documentID string) ([]domain.Fragment, error) {
	raw := sentenceSplitter.Split(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return nil, nil
	}

	var fragments []domain.Fragment
	var current []string
	size := 0

	emit := func() {
		fragments = append(fragments, domain.Fragment{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Text:       strings.Join(current, ". ") + ".",
			Ordinal:    len(fragments),
			Metadata:   make(map[string]any),
		})
	}

	for _, sentence := range sentences {
		if size+len(sentence) > c.chunkSize && len(current) > 0 {
			emit()
			current = []string{sentence}
			size = len(sentence)
		} else {
			current = append(current, sentence)
			size += len(sentence)
		}
	}

	if len(current) > 0 {
		emit()
	}

	return fragments, nil
}

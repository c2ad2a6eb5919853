package driven

import (
	"github.com/custodia-labs/docuchat/internal/core/domain"
)

// Chunker splits document text into ordered fragments.
type Chunker interface {
	// Name returns the strategy key this chunker implements.
	Name() string

	// Chunk splits text into fragments tagged with their ordinal.
	// Empty input yields zero fragments, not an error.
	Chunk(text, documentID string) ([]domain.Fragment, error)
}

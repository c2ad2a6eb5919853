package chunking

import (
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
	"github.com/custodia-labs/docuchat/internal/logger"
)

// Strategy keys accepted by ForKey.
const (
	// StrategyFixedSize selects overlapping fixed-size word windows.
	StrategyFixedSize = "fixed_size"

	// StrategySemantic selects sentence-bounded windows.
	StrategySemantic = "semantic"
)

// settings holds the knobs shared by all strategies.
type settings struct {
	chunkSize int
	overlap   int
}

// Option configures a chunking strategy.
type Option func(*settings)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the number of words shared between consecutive
// fixed-size windows. Ignored by the sentence strategy.
func WithOverlap(overlap int) Option {
	return func(s *settings) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ForKey returns the chunker for the given strategy key.
// Unknown keys fall back to the fixed-size strategy; selection never
// fails so ingestion cannot be rejected on a bad key.
func ForKey(key string, opts ...Option) driven.Chunker {
	switch key {
	case StrategySemantic:
		return NewSentenceBound(opts...)
	case StrategyFixedSize:
		return NewFixedSize(opts...)
	default:
		if key != "" {
			logger.Debug("unknown chunking strategy %q, using %s", key, StrategyFixedSize)
		}
		return NewFixedSize(opts...)
	}
}

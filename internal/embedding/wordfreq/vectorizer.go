// Package wordfreq implements a deterministic, vocabulary-based text
// vectorizer. It is a non-learned stand-in for a semantic embedding
// model: vectors are word-frequency counts over a vocabulary built
// once from the first ingested batch.
package wordfreq

import (
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/custodia-labs/docuchat/internal/logger"
)

// DefaultVectorSize is the default embedding dimensionality.
const DefaultVectorSize = 300

// normFloor is the minimum L2 norm used during normalisation,
// preventing division by zero on all-zero vectors.
const normFloor = 0.001

var tokenPattern = regexp.MustCompile(`\b[a-zA-Z]{3,15}\b`)

// Vectorizer embeds text into fixed-size vectors. The vocabulary is
// built once, on the first BuildVocabulary call, and is read-only
// afterwards; embedding the same text against an unchanged vocabulary
// is deterministic.
//
// A single Vectorizer is shared by ingestion and conversation; the
// build-or-check step is guarded so racing first-time builds cannot
// corrupt the mapping.
type Vectorizer struct {
	mu         sync.RWMutex
	vocabulary map[string]int
	vectorSize int
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithVectorSize sets the embedding dimensionality.
func WithVectorSize(size int) Option {
	return func(v *Vectorizer) {
		if size > 0 {
			v.vectorSize = size
		}
	}
}

// New creates a Vectorizer with no vocabulary.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{vectorSize: DefaultVectorSize}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// VectorSize returns the embedding dimensionality.
func (v *Vectorizer) VectorSize() int {
	return v.vectorSize
}

// Prepared reports whether a vocabulary has been built.
func (v *Vectorizer) Prepared() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vocabulary != nil
}

// BuildVocabulary derives the token-to-slot mapping from the given
// texts: lowercase alphabetic tokens of length 3-15, deduplicated in
// encounter order, up to VectorSize entries. The first call wins;
// subsequent calls are no-ops so the mapping is never re-derived.
func (v *Vectorizer) BuildVocabulary(texts []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.vocabulary != nil {
		return
	}

	vocab := make(map[string]int)
	for _, text := range texts {
		if len(vocab) >= v.vectorSize {
			break
		}
		for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
			if _, seen := vocab[tok]; seen {
				continue
			}
			if len(vocab) >= v.vectorSize {
				break
			}
			vocab[tok] = len(vocab)
		}
	}
	v.vocabulary = vocab
	logger.Info("built vocabulary with %d words", len(vocab))
}

// Embed computes the vector for text. With a vocabulary present, each
// component is the frequency of its token within the text. Without
// one (the cold path, before any document exists) the vector is
// derived from the character codes of the first VectorSize characters
// so queries never fail. Both paths are L2-normalised with the norm
// floored at normFloor.
func (v *Vectorizer) Embed(text string) []float64 {
	v.mu.RLock()
	vocab := v.vocabulary
	v.mu.RUnlock()

	vec := make([]float64, v.vectorSize)

	if vocab != nil {
		tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
		total := len(tokens)
		if total < 1 {
			total = 1
		}
		for _, tok := range tokens {
			if idx, ok := vocab[tok]; ok && idx < v.vectorSize {
				vec[idx] += 1.0 / float64(total)
			}
		}
	} else {
		for i, r := range []rune(strings.ToLower(text)) {
			if i >= v.vectorSize {
				break
			}
			vec[i] = float64(r%100) / 100.0
		}
	}

	normalize(vec)
	return vec
}

func normalize(vec []float64) {
	sum := 0.0
	for _, x := range vec {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	if norm < normFloor {
		norm = normFloor
	}
	for i := range vec {
		vec[i] /= norm
	}
}

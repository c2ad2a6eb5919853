// Package index provides the search index facade: it owns the
// vectorizer, writes fragment vectors to the external vector store and
// serves similarity queries over them.
//
// The index is best-effort by design. If the vector store cannot be
// reached during Init it enters degraded mode: stores become no-ops
// that still hand out embedding ids, and searches return no results.
// Per-operation backend failures are logged and absorbed the same way,
// never propagated to callers.
package index

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
	"github.com/custodia-labs/docuchat/internal/embedding/wordfreq"
	"github.com/custodia-labs/docuchat/internal/logger"
)

// DefaultCollection is the vector store collection name.
const DefaultCollection = "documents"

// RetryPolicy bounds the Init connection attempts.
type RetryPolicy struct {
	// MaxAttempts is how many times to try reaching the store.
	MaxAttempts int

	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// DefaultRetryPolicy is three attempts, five seconds apart.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Delay: 5 * time.Second}

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

// Index wraps a VectorStore with embedding and degraded-mode handling.
type Index struct {
	store      driven.VectorStore
	vectorizer *wordfreq.Vectorizer
	collection string
	retry      RetryPolicy

	mu       sync.RWMutex
	degraded bool
}

// Option configures an Index.
type Option func(*Index)

// WithCollection sets the collection name.
func WithCollection(name string) Option {
	return func(i *Index) {
		if name != "" {
			i.collection = name
		}
	}
}

// WithRetryPolicy sets the Init retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(i *Index) {
		if p.MaxAttempts > 0 {
			i.retry = p
		}
	}
}

// New creates an Index. Call Init once before use; an uninitialised
// index behaves as degraded.
func New(store driven.VectorStore, vectorizer *wordfreq.Vectorizer, opts ...Option) *Index {
	i := &Index{
		store:      store,
		vectorizer: vectorizer,
		collection: DefaultCollection,
		retry:      DefaultRetryPolicy,
		degraded:   true,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Init verifies the collection exists, creating it with cosine
// distance if missing. It retries up to the policy's MaxAttempts with
// a fixed delay; on exhaustion the index stays degraded. Init runs
// once at startup and is the only blocking retry loop in the system.
func (i *Index) Init(ctx context.Context) {
	for attempt := 1; attempt <= i.retry.MaxAttempts; attempt++ {
		err := i.store.EnsureCollection(ctx, i.collection, i.vectorizer.VectorSize())
		if err == nil {
			i.setDegraded(false)
			logger.Info("vector store connected, collection %q ready", i.collection)
			return
		}

		logger.Warn("vector store connection attempt %d/%d failed: %v",
			attempt, i.retry.MaxAttempts, err)
		if attempt < i.retry.MaxAttempts {
			select {
			case <-ctx.Done():
				i.setDegraded(true)
				return
			case <-time.After(i.retry.Delay):
			}
		}
	}
	i.setDegraded(true)
	logger.Warn("vector store unreachable, continuing in degraded mode")
}

// Healthy reports whether the backing store was reachable at Init.
func (i *Index) Healthy() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return !i.degraded
}

func (i *Index) setDegraded(d bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.degraded = d
}

// Store embeds the fragments and upserts them into the collection,
// returning one fresh embedding id per fragment. The vocabulary is
// built from this batch if it does not exist yet. In degraded mode the
// upsert is skipped but ids are still returned, so ingestion proceeds
// with the catalog as the source of truth.
func (i *Index) Store(ctx context.Context, fragments []domain.Fragment, documentID string) []string {
	ids := make([]string, len(fragments))
	for n := range ids {
		ids[n] = uuid.New().String()
	}

	if !i.Healthy() {
		logger.Warn("vector store unavailable, skipping embedding storage for document %s", documentID)
		return ids
	}

	texts := make([]string, len(fragments))
	for n, f := range fragments {
		texts[n] = f.Text
	}
	if !i.vectorizer.Prepared() {
		i.vectorizer.BuildVocabulary(texts)
	}

	points := make([]driven.VectorPoint, len(fragments))
	for n, f := range fragments {
		points[n] = driven.VectorPoint{
			ID:     ids[n],
			Vector: i.vectorizer.Embed(f.Text),
			Payload: map[string]any{
				"document_id": documentID,
				"ordinal":     f.Ordinal,
				"text":        f.Text,
				"metadata":    f.Metadata,
			},
		}
	}

	if err := i.store.Upsert(ctx, i.collection, points); err != nil {
		logger.Warn("failed to store %d embeddings for document %s: %v", len(points), documentID, err)
		return ids
	}
	logger.Debug("stored %d embeddings for document %s", len(points), documentID)
	return ids
}

// Search embeds the query against the current vocabulary state and
// returns the topK most similar fragments, highest relevance first.
// Degraded mode and backend failures both yield no results.
func (i *Index) Search(ctx context.Context, query string, topK int) []domain.SearchResult {
	if !i.Healthy() {
		logger.Warn("vector store unavailable, returning no search results")
		return nil
	}

	vec := i.vectorizer.Embed(query)
	matches, err := i.store.Query(ctx, i.collection, vec, topK)
	if err != nil {
		logger.Warn("vector search failed: %v", err)
		return nil
	}

	results := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		r := domain.SearchResult{Score: m.Score}
		if text, ok := m.Payload["text"].(string); ok {
			r.Text = text
		}
		if docID, ok := m.Payload["document_id"].(string); ok {
			r.DocumentID = docID
		}
		if meta, ok := m.Payload["metadata"].(map[string]any); ok {
			r.Metadata = meta
		}
		results = append(results, r)
	}
	logger.Debug("found %d similar fragments", len(results))
	return results
}

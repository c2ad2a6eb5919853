package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
	"github.com/custodia-labs/docuchat/internal/embedding/wordfreq"
)

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	ensureErr   error
	ensureCalls int
	upsertErr   error
	upserted    []driven.VectorPoint
	queryErr    error
	matches     []driven.VectorMatch
	lastDim     int
	lastTopK    int
}

func (m *mockVectorStore) EnsureCollection(_ context.Context, _ string, dimension int) error {
	m.ensureCalls++
	m.lastDim = dimension
	return m.ensureErr
}

func (m *mockVectorStore) Upsert(_ context.Context, _ string, points []driven.VectorPoint) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, points...)
	return nil
}

func (m *mockVectorStore) Query(_ context.Context, _ string, _ []float64, topK int) ([]driven.VectorMatch, error) {
	m.lastTopK = topK
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.matches, nil
}

func fastRetry(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, Delay: time.Millisecond}
}

func newFragments(texts ...string) []domain.Fragment {
	fragments := make([]domain.Fragment, len(texts))
	for i, text := range texts {
		fragments[i] = domain.Fragment{
			DocumentID: "doc-1",
			Text:       text,
			Ordinal:    i,
			Metadata:   map[string]any{},
		}
	}
	return fragments
}

func TestIndex_Init_Success(t *testing.T) {
	store := &mockVectorStore{}
	idx := New(store, wordfreq.New(wordfreq.WithVectorSize(50)), WithRetryPolicy(fastRetry(3)))

	require.False(t, idx.Healthy(), "index should be degraded before Init")
	idx.Init(context.Background())

	assert.True(t, idx.Healthy())
	assert.Equal(t, 1, store.ensureCalls)
	assert.Equal(t, 50, store.lastDim)
}

func TestIndex_Init_RetriesThenDegrades(t *testing.T) {
	store := &mockVectorStore{ensureErr: errors.New("connection refused")}
	idx := New(store, wordfreq.New(), WithRetryPolicy(fastRetry(3)))

	idx.Init(context.Background())

	assert.False(t, idx.Healthy())
	assert.Equal(t, 3, store.ensureCalls, "should retry exactly MaxAttempts times")
}

func TestIndex_Store_Degraded_StillReturnsIDs(t *testing.T) {
	store := &mockVectorStore{ensureErr: errors.New("down")}
	idx := New(store, wordfreq.New(wordfreq.WithVectorSize(50)), WithRetryPolicy(fastRetry(1)))
	idx.Init(context.Background())

	ids := idx.Store(context.Background(), newFragments("alpha beta", "gamma delta"), "doc-1")

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Empty(t, store.upserted, "degraded store must not upsert")
}

func TestIndex_Store_UpsertsWithPayload(t *testing.T) {
	store := &mockVectorStore{}
	vectorizer := wordfreq.New(wordfreq.WithVectorSize(50))
	idx := New(store, vectorizer, WithRetryPolicy(fastRetry(1)))
	idx.Init(context.Background())

	ids := idx.Store(context.Background(), newFragments("alpha beta gamma", "delta epsilon"), "doc-1")

	require.Len(t, ids, 2)
	require.Len(t, store.upserted, 2)
	assert.True(t, vectorizer.Prepared(), "first store should build the vocabulary")

	p := store.upserted[0]
	assert.Equal(t, ids[0], p.ID)
	assert.Len(t, p.Vector, 50)
	assert.Equal(t, "doc-1", p.Payload["document_id"])
	assert.Equal(t, 0, p.Payload["ordinal"])
	assert.Equal(t, "alpha beta gamma", p.Payload["text"])
}

func TestIndex_Store_UpsertFailureAbsorbed(t *testing.T) {
	store := &mockVectorStore{upsertErr: errors.New("write timeout")}
	idx := New(store, wordfreq.New(wordfreq.WithVectorSize(50)), WithRetryPolicy(fastRetry(1)))
	idx.Init(context.Background())

	ids := idx.Store(context.Background(), newFragments("alpha beta"), "doc-1")

	// Failure is logged, not surfaced; ids are still handed out.
	require.Len(t, ids, 1)
	assert.NotEmpty(t, ids[0])
}

func TestIndex_Search_Degraded_ReturnsEmpty(t *testing.T) {
	store := &mockVectorStore{ensureErr: errors.New("down")}
	idx := New(store, wordfreq.New(), WithRetryPolicy(fastRetry(1)))
	idx.Init(context.Background())

	results := idx.Search(context.Background(), "anything", 3)
	assert.Empty(t, results)
}

func TestIndex_Search_MapsMatches(t *testing.T) {
	store := &mockVectorStore{
		matches: []driven.VectorMatch{
			{
				ID:    "emb-1",
				Score: 0.91,
				Payload: map[string]any{
					"document_id": "doc-1",
					"text":        "alpha beta",
					"metadata":    map[string]any{"text_length": 10},
				},
			},
			{
				ID:      "emb-2",
				Score:   0.42,
				Payload: map[string]any{"document_id": "doc-2", "text": "gamma"},
			},
		},
	}
	idx := New(store, wordfreq.New(wordfreq.WithVectorSize(50)), WithRetryPolicy(fastRetry(1)))
	idx.Init(context.Background())

	results := idx.Search(context.Background(), "alpha", 3)

	require.Len(t, results, 2)
	assert.Equal(t, 3, store.lastTopK)
	assert.Equal(t, "alpha beta", results[0].Text)
	assert.Equal(t, 0.91, results[0].Score)
	assert.Equal(t, "doc-1", results[0].DocumentID)
	assert.NotNil(t, results[0].Metadata)
	assert.Equal(t, "gamma", results[1].Text)
	assert.Nil(t, results[1].Metadata)
}

func TestIndex_Search_QueryFailureAbsorbed(t *testing.T) {
	store := &mockVectorStore{queryErr: errors.New("read timeout")}
	idx := New(store, wordfreq.New(wordfreq.WithVectorSize(50)), WithRetryPolicy(fastRetry(1)))
	idx.Init(context.Background())

	results := idx.Search(context.Background(), "anything", 3)
	assert.Empty(t, results)
	assert.True(t, idx.Healthy(), "a failed query must not flip degraded mode")
}

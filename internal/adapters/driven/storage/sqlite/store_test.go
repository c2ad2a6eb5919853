package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testDocument(id string) *domain.Document {
	return &domain.Document{
		ID:               id,
		Filename:         "notes.txt",
		FilePath:         "/tmp/notes.txt",
		ChunkingStrategy: "fixed_size",
		Metadata:         map[string]any{"chunk_count": float64(2), "file_size": float64(42)},
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
	}
}

func testFragments(documentID string) []domain.Fragment {
	return []domain.Fragment{
		{
			ID:          "frag-1",
			DocumentID:  documentID,
			Text:        "first fragment of text",
			Ordinal:     0,
			EmbeddingID: "emb-1",
			Metadata:    map[string]any{"text_length": float64(22)},
		},
		{
			ID:          "frag-2",
			DocumentID:  documentID,
			Text:        "second fragment of text",
			Ordinal:     1,
			EmbeddingID: "emb-2",
			Metadata:    map[string]any{"text_length": float64(23)},
		},
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "catalog.db"), store.Path())
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRunInTransaction_PersistsDocumentAndFragments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	err := store.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return err
		}
		return tx.InsertFragments(ctx, testFragments(doc.ID))
	})
	require.NoError(t, err)

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", got.Filename)
	assert.Equal(t, "fixed_size", got.ChunkingStrategy)
	assert.Equal(t, float64(2), got.Metadata["chunk_count"])

	fragments, err := store.GetFragments(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, fragments, 2)
	assert.Equal(t, 0, fragments[0].Ordinal)
	assert.Equal(t, 1, fragments[1].Ordinal)
	assert.Equal(t, "emb-1", fragments[0].EmbeddingID)
	assert.Equal(t, float64(23), fragments[1].Metadata["text_length"])
}

func TestRunInTransaction_RollbackLeavesNoRows(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		if err := tx.InsertDocument(ctx, testDocument("doc-1")); err != nil {
			return err
		}
		if err := tx.InsertFragments(ctx, testFragments("doc-1")); err != nil {
			return err
		}
		// Fail after the writes so the whole unit rolls back.
		return boom
	})
	require.ErrorIs(t, err, boom)

	fragments, err := store.GetFragments(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, fragments)

	_, err = store.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDocument_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDocuments_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := testDocument("doc-old")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testDocument("doc-new")
	newer.CreatedAt = time.Now().UTC()

	err := store.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		if err := tx.InsertDocument(ctx, older); err != nil {
			return err
		}
		return tx.InsertDocument(ctx, newer)
	})
	require.NoError(t, err)

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-new", docs[0].ID)
	assert.Equal(t, "doc-old", docs[1].ID)
}

func TestInsertBooking_ListBySession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		if err := tx.InsertBooking(ctx, &domain.Booking{
			ID:        "book-1",
			Name:      "Jane Doe",
			Email:     "jane@example.com",
			Date:      "2026-09-15",
			Time:      "14:00",
			SessionID: "session-a",
		}); err != nil {
			return err
		}
		return tx.InsertBooking(ctx, &domain.Booking{
			ID:        "book-2",
			Name:      "John Smith",
			Email:     "john@example.com",
			SessionID: "session-b",
		})
	})
	require.NoError(t, err)

	bookings, err := store.ListBookings(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Jane Doe", bookings[0].Name)
	assert.Equal(t, "14:00", bookings[0].Time)
	assert.False(t, bookings[0].CreatedAt.IsZero())

	all, err := store.ListBookings(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFragmentsCascadeWithDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	err := store.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return err
		}
		return tx.InsertFragments(ctx, testFragments(doc.ID))
	})
	require.NoError(t, err)

	_, err = store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", "doc-1")
	require.NoError(t, err)

	fragments, err := store.GetFragments(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, fragments)
}

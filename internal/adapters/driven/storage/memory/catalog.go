// Package memory provides an in-memory catalog store, mainly for tests
// and ephemeral runs where nothing needs to survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
// Transactions buffer their writes and apply them only on success.
type CatalogStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	fragments map[string][]domain.Fragment
	bookings  []domain.Booking
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		documents: make(map[string]domain.Document),
		fragments: make(map[string][]domain.Fragment),
	}
}

// RunInTransaction executes fn against a write buffer. The buffer is
// applied under the lock only when fn returns nil.
func (s *CatalogStore) RunInTransaction(_ context.Context, fn func(tx driven.CatalogTx) error) error {
	buf := &catalogTx{}
	if err := fn(buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range buf.documents {
		s.documents[doc.ID] = doc
	}
	for _, f := range buf.fragments {
		s.fragments[f.DocumentID] = append(s.fragments[f.DocumentID], f)
	}
	s.bookings = append(s.bookings, buf.bookings...)
	return nil
}

// GetDocument retrieves a document by ID.
func (s *CatalogStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all catalogued documents, newest first.
func (s *CatalogStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// GetFragments returns the fragments for a document in ordinal order.
func (s *CatalogStore) GetFragments(_ context.Context, documentID string) ([]domain.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fragments := append([]domain.Fragment(nil), s.fragments[documentID]...)
	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].Ordinal < fragments[j].Ordinal
	})
	return fragments, nil
}

// ListBookings returns bookings for a session, newest first. An empty
// sessionID returns all bookings.
func (s *CatalogStore) ListBookings(_ context.Context, sessionID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Booking
	for _, b := range s.bookings {
		if sessionID == "" || b.SessionID == sessionID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Close is a no-op for the in-memory store.
func (s *CatalogStore) Close() error {
	return nil
}

// catalogTx buffers writes until the transaction commits.
type catalogTx struct {
	documents []domain.Document
	fragments []domain.Fragment
	bookings  []domain.Booking
}

var _ driven.CatalogTx = (*catalogTx)(nil)

// InsertDocument buffers a document write.
func (t *catalogTx) InsertDocument(_ context.Context, doc *domain.Document) error {
	d := *doc
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	t.documents = append(t.documents, d)
	return nil
}

// InsertFragments buffers fragment writes.
func (t *catalogTx) InsertFragments(_ context.Context, fragments []domain.Fragment) error {
	t.fragments = append(t.fragments, fragments...)
	return nil
}

// InsertBooking buffers a booking write.
func (t *catalogTx) InsertBooking(_ context.Context, booking *domain.Booking) error {
	b := *booking
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	t.bookings = append(t.bookings, b)
	return nil
}

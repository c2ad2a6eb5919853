package driven

import (
	"context"

	"github.com/custodia-labs/docuchat/internal/core/domain"
)

// CatalogStore persists document, fragment and booking metadata.
// Backed by SQLite.
//
// All writes go through RunInTransaction: either every insert in the
// unit of work commits, or none do. Partial writes (some fragment rows
// but not the document row) must be impossible.
type CatalogStore interface {
	// RunInTransaction executes fn inside a single transaction.
	// If fn returns an error the transaction is rolled back and the
	// error is returned to the caller.
	RunInTransaction(ctx context.Context, fn func(tx CatalogTx) error) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all catalogued documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GetFragments returns the fragment rows for a document,
	// ordered by ordinal.
	GetFragments(ctx context.Context, documentID string) ([]domain.Fragment, error)

	// ListBookings returns bookings for a session. An empty sessionID
	// returns all bookings.
	ListBookings(ctx context.Context, sessionID string) ([]domain.Booking, error)

	// Close releases the underlying connection.
	Close() error
}

// CatalogTx is the write surface available inside a transaction.
type CatalogTx interface {
	// InsertDocument stores a document row.
	InsertDocument(ctx context.Context, doc *domain.Document) error

	// InsertFragments stores fragment rows for a document.
	InsertFragments(ctx context.Context, fragments []domain.Fragment) error

	// InsertBooking stores an interview booking.
	InsertBooking(ctx context.Context, booking *domain.Booking) error
}

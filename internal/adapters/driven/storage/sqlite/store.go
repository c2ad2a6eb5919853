package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docuchat/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CatalogStore = (*Store)(nil)

// Store is the SQLite-backed catalog of documents, fragments and
// interview bookings.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docuchat/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docuchat", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// RunInTransaction executes fn inside a single transaction. Any error
// from fn rolls back every write in the unit of work.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx driven.CatalogTx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(&catalogTx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rolling back after %v: %w", err, rbErr)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, filename, file_path, chunking_strategy, metadata, created_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns all catalogued documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, file_path, chunking_strategy, metadata, created_at
		FROM documents ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// GetFragments returns the fragment rows for a document in ordinal order.
func (s *Store) GetFragments(ctx context.Context, documentID string) ([]domain.Fragment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, fragment_text, ordinal, metadata, embedding_id
		FROM document_fragments WHERE document_id = ? ORDER BY ordinal
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing fragments: %w", err)
	}
	defer rows.Close()

	var fragments []domain.Fragment
	for rows.Next() {
		var f domain.Fragment
		var metadataJSON string
		if err := rows.Scan(&f.ID, &f.DocumentID, &f.Text, &f.Ordinal,
			&metadataJSON, &f.EmbeddingID); err != nil {
			return nil, fmt.Errorf("scanning fragment: %w", err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &f.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshalling fragment metadata: %w", err)
		}
		fragments = append(fragments, f)
	}
	return fragments, rows.Err()
}

// ListBookings returns bookings for a session, newest first.
// An empty sessionID returns all bookings.
func (s *Store) ListBookings(ctx context.Context, sessionID string) ([]domain.Booking, error) {
	query := `
		SELECT id, name, email, date, time, session_id, created_at
		FROM interview_bookings
	`
	var args []any
	if sessionID != "" {
		query += " WHERE session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Date, &b.Time,
			&b.SessionID, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var metadataJSON string
	if err := row.Scan(&doc.ID, &doc.Filename, &doc.FilePath,
		&doc.ChunkingStrategy, &metadataJSON, &doc.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(metadataJSON), &doc.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshalling document metadata: %w", err)
	}
	return &doc, nil
}

// ==================== Transaction writes ====================

// catalogTx implements driven.CatalogTx on an open transaction.
type catalogTx struct {
	tx *sql.Tx
}

var _ driven.CatalogTx = (*catalogTx)(nil)

// InsertDocument stores a document row.
func (t *catalogTx) InsertDocument(ctx context.Context, doc *domain.Document) error {
	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO documents (id, filename, file_path, chunking_strategy, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, doc.FilePath, doc.ChunkingStrategy,
		string(metadataJSON), createdAt)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// InsertFragments stores fragment rows for a document.
func (t *catalogTx) InsertFragments(ctx context.Context, fragments []domain.Fragment) error {
	for _, f := range fragments {
		metadataJSON, err := json.Marshal(f.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling fragment metadata: %w", err)
		}
		_, err = t.tx.ExecContext(ctx, `
			INSERT INTO document_fragments (id, document_id, fragment_text, ordinal, metadata, embedding_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`, f.ID, f.DocumentID, f.Text, f.Ordinal, string(metadataJSON), f.EmbeddingID)
		if err != nil {
			return fmt.Errorf("inserting fragment %d: %w", f.Ordinal, err)
		}
	}
	return nil
}

// InsertBooking stores an interview booking.
func (t *catalogTx) InsertBooking(ctx context.Context, booking *domain.Booking) error {
	createdAt := booking.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO interview_bookings (id, name, email, date, time, session_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, booking.ID, booking.Name, booking.Email, booking.Date, booking.Time,
		booking.SessionID, createdAt)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

package domain

import "time"

// Document represents an ingested document with metadata.
// It is the canonical catalog record; the full text is not retained
// here, only on the fragments sent to the vector index.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original name of the uploaded file.
	Filename string

	// FilePath is where the uploaded bytes were saved, if anywhere.
	FilePath string

	// ChunkingStrategy is the strategy key used to fragment the document.
	ChunkingStrategy string

	// Metadata contains arbitrary key-value pairs (fragment count, size).
	Metadata map[string]any

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Fragment is a contiguous slice of a document's text produced by
// chunking. Fragments are immutable once created.
type Fragment struct {
	// ID is the unique identifier for the fragment.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Text is the fragment content.
	Text string

	// Ordinal is the position within the document, starting at zero.
	Ordinal int

	// EmbeddingID identifies the vector stored for this fragment.
	EmbeddingID string

	// Metadata contains fragment-specific key-value pairs.
	Metadata map[string]any
}

// SearchResult represents a fragment matched against a query.
// Results are ephemeral; they exist only for the duration of a query.
type SearchResult struct {
	// Text is the matched fragment text.
	Text string

	// Score is the cosine similarity to the query, higher is better.
	Score float64

	// DocumentID links to the source document.
	DocumentID string

	// Metadata carries the fragment metadata stored alongside the vector.
	Metadata map[string]any
}

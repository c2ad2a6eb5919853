package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates an upload of a type no extractor
	// handles. Rejected before the ingestion pipeline runs.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrExtractionFailed indicates the uploaded bytes could not be read
	// as text. Aborts ingestion.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrVectorStoreUnavailable indicates the vector store could not be
	// reached. The index absorbs this and degrades; it is never surfaced
	// to callers of the core boundary.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrSessionStoreUnavailable indicates conversation history could not
	// be read. Conversations proceed with empty history rather than fail.
	ErrSessionStoreUnavailable = errors.New("session store unavailable")
)

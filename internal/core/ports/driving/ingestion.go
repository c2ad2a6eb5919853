package driving

import "context"

// IngestResult summarises a processed document.
type IngestResult struct {
	// DocumentID is the id assigned to the document.
	DocumentID string

	// Filename is the original upload name.
	Filename string

	// FragmentCount is how many fragments the document produced.
	FragmentCount int

	// Status is a human-readable outcome ("processed").
	Status string
}

// IngestionService turns uploaded documents into searchable fragments.
type IngestionService interface {
	// IngestFile extracts text from the upload and runs the ingestion
	// pipeline. The file type is taken from the filename extension.
	IngestFile(ctx context.Context, content []byte, filename, strategyKey string) (*IngestResult, error)

	// Ingest runs the pipeline on already-extracted text. Unknown
	// strategy keys silently fall back to fixed-size chunking.
	Ingest(ctx context.Context, text, documentID, filename, strategyKey string) (*IngestResult, error)
}

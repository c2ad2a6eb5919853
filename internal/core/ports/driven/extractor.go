package driven

import "context"

// TextExtractor turns raw upload bytes into plain text.
// Each implementation handles specific file extensions.
type TextExtractor interface {
	// SupportedTypes returns the file extensions this extractor handles,
	// lowercase with leading dot (".txt").
	SupportedTypes() []string

	// Extract returns the text content of the upload.
	// Returns domain.ErrUnsupportedFileType for extensions it does not
	// handle and domain.ErrExtractionFailed for unreadable content.
	Extract(ctx context.Context, content []byte, fileType string) (string, error)
}

package plaintext

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor handles plain text uploads. Markdown is treated as plain
// text; its markup survives into the extracted content.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedTypes returns the file extensions this extractor handles.
func (e *Extractor) SupportedTypes() []string {
	return []string{".txt", ".md", ".markdown"}
}

// Extract returns the text content of the upload.
func (e *Extractor) Extract(_ context.Context, content []byte, fileType string) (string, error) {
	ext := strings.ToLower(fileType)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !slices.Contains(e.SupportedTypes(), ext) {
		return "", domain.ErrUnsupportedFileType
	}

	if !utf8.Valid(content) {
		return "", domain.ErrExtractionFailed
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", domain.ErrExtractionFailed
	}
	return text, nil
}

package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/custodia-labs/docuchat/internal/chunking"
	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
	"github.com/custodia-labs/docuchat/internal/core/ports/driving"
	"github.com/custodia-labs/docuchat/internal/logger"
)

// Catalog rows keep a bounded excerpt; the full text lives in the
// vector store payload.
const catalogTextLimit = 1000

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// IngestionService turns uploads into fragments, indexes them and
// records the result in the catalog.
type IngestionService struct {
	extractor driven.TextExtractor
	index     driven.SearchIndex
	catalog   driven.CatalogStore
	chunkOpts []chunking.Option
}

// NewIngestionService creates a new ingestion service. The chunking
// options apply to every strategy the service selects.
func NewIngestionService(
	extractor driven.TextExtractor,
	index driven.SearchIndex,
	catalog driven.CatalogStore,
	chunkOpts ...chunking.Option,
) *IngestionService {
	return &IngestionService{
		extractor: extractor,
		index:     index,
		catalog:   catalog,
		chunkOpts: chunkOpts,
	}
}

// IngestFile extracts text from the upload and runs the pipeline.
func (s *IngestionService) IngestFile(
	ctx context.Context, content []byte, filename, strategyKey string,
) (*driving.IngestResult, error) {
	text, err := s.extractor.Extract(ctx, content, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}
	return s.Ingest(ctx, text, uuid.New().String(), filename, strategyKey)
}

// Ingest chunks the text, stores the fragments in the search index and
// writes the document and fragment rows in a single transaction. A
// catalog failure rolls back every row and propagates.
func (s *IngestionService) Ingest(
	ctx context.Context, text, documentID, filename, strategyKey string,
) (*driving.IngestResult, error) {
	if documentID == "" {
		documentID = uuid.New().String()
	}

	strategy := chunking.ForKey(strategyKey, s.chunkOpts...)
	logger.Section("Document Ingestion")
	logger.Debug("Document %s (%s), strategy %s", documentID, filename, strategy.Name())

	fragments, err := strategy.Chunk(text, documentID)
	if err != nil {
		return nil, fmt.Errorf("chunking document %s: %w", documentID, err)
	}

	embeddingIDs := s.index.Store(ctx, fragments, documentID)
	logger.Debug("Indexed %d fragments", len(embeddingIDs))

	doc := &domain.Document{
		ID:               documentID,
		Filename:         filename,
		FilePath:         filename,
		ChunkingStrategy: strategy.Name(),
		Metadata: map[string]any{
			"chunk_count": len(fragments),
			"file_size":   len(text),
		},
	}

	rows := make([]domain.Fragment, len(fragments))
	for i, f := range fragments {
		row := f
		if i < len(embeddingIDs) {
			row.EmbeddingID = embeddingIDs[i]
		}
		if len(row.Text) > catalogTextLimit {
			row.Text = row.Text[:catalogTextLimit]
		}
		meta := make(map[string]any, len(f.Metadata)+2)
		for k, v := range f.Metadata {
			meta[k] = v
		}
		meta["embedding_id"] = row.EmbeddingID
		meta["text_length"] = len(f.Text)
		row.Metadata = meta
		rows[i] = row
	}

	err = s.catalog.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		if err := tx.InsertDocument(ctx, doc); err != nil {
			return err
		}
		return tx.InsertFragments(ctx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("cataloguing document %s: %w", documentID, err)
	}

	return &driving.IngestResult{
		DocumentID:    documentID,
		Filename:      filename,
		FragmentCount: len(fragments),
		Status:        "processed",
	}, nil
}

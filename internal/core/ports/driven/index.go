package driven

import (
	"context"

	"github.com/custodia-labs/docuchat/internal/core/domain"
)

// SearchIndex embeds fragments and serves similarity queries over them.
// It wraps a VectorStore and absorbs its failures: operations degrade
// rather than error, so callers never see backend outages.
type SearchIndex interface {
	// Store embeds the fragments and writes them to the vector store,
	// returning one fresh embedding id per fragment. The ids are
	// returned even when the backing store is unreachable; the catalog
	// remains the source of truth in that case.
	Store(ctx context.Context, fragments []domain.Fragment, documentID string) []string

	// Search embeds the query and returns the topK most similar
	// fragments, highest relevance first. In degraded mode it
	// returns no results.
	Search(ctx context.Context, query string, topK int) []domain.SearchResult

	// Healthy reports whether the backing vector store is reachable.
	Healthy() bool
}

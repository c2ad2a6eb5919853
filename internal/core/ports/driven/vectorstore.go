package driven

import "context"

// VectorStore is an external service storing vectors and serving
// nearest-neighbour queries. Backed by Qdrant over its REST API.
// It must support cosine similarity.
type VectorStore interface {
	// EnsureCollection creates the named collection with the given
	// dimensionality and cosine distance if it does not already exist.
	EnsureCollection(ctx context.Context, name string, dimension int) error

	// Upsert writes points into the collection.
	Upsert(ctx context.Context, collection string, points []VectorPoint) error

	// Query returns the topK nearest points to the vector,
	// highest similarity first.
	Query(ctx context.Context, collection string, vector []float64, topK int) ([]VectorMatch, error)
}

// VectorPoint is one vector with its identity and payload.
type VectorPoint struct {
	// ID is the opaque embedding identifier.
	ID string

	// Vector is the unit-normalised embedding.
	Vector []float64

	// Payload is stored alongside the vector and returned on query.
	Payload map[string]any
}

// VectorMatch is one similarity query hit.
type VectorMatch struct {
	// ID is the matched point's identifier.
	ID string

	// Score is the cosine similarity, higher is more relevant.
	Score float64

	// Payload is the data stored with the point.
	Payload map[string]any
}

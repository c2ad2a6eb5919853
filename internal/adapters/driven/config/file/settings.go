package file

import (
	"os"
	"time"
)

// Configuration keys and their fallbacks. Environment variables take
// precedence over the file so containerised runs need no config file.
const (
	keyQdrantURL        = "qdrant.url"
	keyQdrantAPIKey     = "qdrant.api_key"
	keyQdrantCollection = "qdrant.collection"
	keyQdrantTimeout    = "qdrant.timeout_seconds"
	keyChunkSize        = "chunking.size"
	keyChunkOverlap     = "chunking.overlap"
	keyVectorSize       = "embedding.vector_size"
	keyHistoryLimit     = "session.history_limit"
	keySessionRetention = "session.retention_minutes"

	envQdrantURL    = "QDRANT_URL"
	envQdrantAPIKey = "QDRANT_API_KEY"
)

// Settings resolves docuchat configuration from a ConfigStore with
// environment overrides and defaults.
type Settings struct {
	store *ConfigStore
}

// NewSettings wraps a config store with typed docuchat accessors.
func NewSettings(store *ConfigStore) *Settings {
	return &Settings{store: store}
}

// QdrantURL returns the vector store base URL.
func (s *Settings) QdrantURL() string {
	if url := os.Getenv(envQdrantURL); url != "" {
		return url
	}
	return s.store.GetString(keyQdrantURL)
}

// QdrantAPIKey returns the vector store api key, if any.
func (s *Settings) QdrantAPIKey() string {
	if key := os.Getenv(envQdrantAPIKey); key != "" {
		return key
	}
	return s.store.GetString(keyQdrantAPIKey)
}

// QdrantCollection returns the collection name, or "" for the default.
func (s *Settings) QdrantCollection() string {
	return s.store.GetString(keyQdrantCollection)
}

// QdrantTimeout returns the per-request timeout, or 0 for the default.
func (s *Settings) QdrantTimeout() time.Duration {
	return time.Duration(s.store.GetInt(keyQdrantTimeout)) * time.Second
}

// ChunkSize returns the configured chunk size, or 0 for the default.
func (s *Settings) ChunkSize() int {
	return s.store.GetInt(keyChunkSize)
}

// ChunkOverlap returns the configured overlap, or 0 for the default.
func (s *Settings) ChunkOverlap() int {
	return s.store.GetInt(keyChunkOverlap)
}

// VectorSize returns the embedding dimension, or 0 for the default.
func (s *Settings) VectorSize() int {
	return s.store.GetInt(keyVectorSize)
}

// HistoryLimit returns the per-query history cap, or 0 for the default.
func (s *Settings) HistoryLimit() int {
	return s.store.GetInt(keyHistoryLimit)
}

// SessionRetention returns the session window, or 0 for the default.
func (s *Settings) SessionRetention() time.Duration {
	return time.Duration(s.store.GetInt(keySessionRetention)) * time.Minute
}

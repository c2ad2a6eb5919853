// Package qdrant provides a VectorStore adapter using the Qdrant REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:6333"
	DefaultTimeout = 15 * time.Second

	// DefaultRequestsPerSecond paces calls to a shared Qdrant instance.
	DefaultRequestsPerSecond = 20.0
	DefaultBurstSize         = 40
)

// Config holds connection details for a Qdrant vector store.
type Config struct {
	// BaseURL is the Qdrant REST endpoint (default: http://localhost:6333).
	BaseURL string

	// APIKey is sent as the api-key header when non-empty.
	APIKey string

	// Timeout is the per-request timeout (default: 15s).
	Timeout time.Duration

	// RequestsPerSecond is the sustained request rate (default: 20).
	RequestsPerSecond float64

	// BurstSize is the maximum request burst (default: 40).
	BurstSize int
}

// Store is a minimal REST client to Qdrant. It assumes cosine distance
// and creates collections if missing.
type Store struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
}

// NewStore creates a new Qdrant store from the config.
func NewStore(cfg Config) *Store {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultBurstSize
	}

	return &Store{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// EnsureCollection creates the collection with cosine distance if it
// does not already exist. Qdrant returns 200 when the collection
// exists with the same schema, so re-ensuring is idempotent.
func (s *Store) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.baseURL, name), body)
}

// Upsert writes points into the collection and waits for them to be
// persisted before returning.
func (s *Store) Upsert(ctx context.Context, collection string, points []driven.VectorPoint) error {
	if len(points) == 0 {
		return nil
	}
	payload := make([]map[string]any, len(points))
	for i, p := range points {
		payload[i] = map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		}
	}
	body := map[string]any{"points": payload}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.baseURL, collection), body)
}

// Query returns the topK nearest points by cosine similarity.
func (s *Store) Query(ctx context.Context, collection string, vector []float64, topK int) ([]driven.VectorMatch, error) {
	if topK <= 0 {
		topK = 5
	}
	body := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.baseURL, collection)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, err
	}

	matches := make([]driven.VectorMatch, 0, len(resp.Result))
	for _, r := range resp.Result {
		m := driven.VectorMatch{Score: r.Score, Payload: r.Payload}
		if id, ok := r.ID.(string); ok {
			m.ID = id
		} else {
			m.ID = fmt.Sprint(r.ID)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func (s *Store) putJSON(ctx context.Context, url string, body any) error {
	return s.send(ctx, http.MethodPut, url, body, nil)
}

func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	return s.send(ctx, http.MethodPost, url, body, out)
}

func (s *Store) send(ctx context.Context, method, url string, body, out any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err != nil {
			return fmt.Errorf("qdrant %s %s: status %s", method, url, resp.Status)
		}
		return fmt.Errorf("qdrant %s %s: status %s: %s", method, url, resp.Status, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

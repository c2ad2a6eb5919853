// Package memory provides an in-memory session store with a sliding
// retention window. History lives only as long as the process and the
// window; an expired session reads as empty.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
)

// DefaultRetention is how long a session's history survives without
// new activity.
const DefaultRetention = time.Hour

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Appending to a session renews its retention window.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*session
	retention time.Duration
	now       func() time.Time
}

type session struct {
	turns     []domain.Turn
	expiresAt time.Time
}

// Option configures the session store.
type Option func(*SessionStore)

// WithRetention overrides the retention window.
func WithRetention(d time.Duration) Option {
	return func(s *SessionStore) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore(opts ...Option) *SessionStore {
	s := &SessionStore{
		sessions:  make(map[string]*session),
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append adds a turn to the session and renews its retention window.
func (s *SessionStore) Append(_ context.Context, sessionID string, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[sessionID]
	if !ok || !sess.expiresAt.After(now) {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	sess.turns = append(sess.turns, turn)
	sess.expiresAt = now.Add(s.retention)
	return nil
}

// Recent returns up to limit turns, oldest first. Expired or unknown
// sessions yield no turns.
func (s *SessionStore) Recent(_ context.Context, sessionID string, limit int) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok || !sess.expiresAt.After(s.now()) {
		return nil, nil
	}

	turns := sess.turns
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	return append([]domain.Turn(nil), turns...), nil
}

// Clear removes all history for the session.
func (s *SessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

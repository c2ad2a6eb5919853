package driven

import (
	"context"

	"github.com/custodia-labs/docuchat/internal/core/domain"
)

// SessionStore keeps per-session conversation history.
// Entries expire after a fixed retention window (1 hour by default);
// appending to a session renews its window.
type SessionStore interface {
	// Append adds a turn to the end of the session's history.
	Append(ctx context.Context, sessionID string, turn domain.Turn) error

	// Recent returns up to limit turns, oldest first.
	// An expired or unknown session yields no turns, not an error.
	Recent(ctx context.Context, sessionID string, limit int) ([]domain.Turn, error)

	// Clear removes all history for the session.
	Clear(ctx context.Context, sessionID string) error
}

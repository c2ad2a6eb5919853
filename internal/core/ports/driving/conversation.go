package driving

import (
	"context"

	"github.com/custodia-labs/docuchat/internal/core/domain"
)

// Answer is the outcome of one conversational query.
type Answer struct {
	// Response is the composed reply text.
	Response string

	// Sources describes each retrieved fragment with its relevance.
	Sources []string

	// BookingID is set when the query created an interview booking.
	BookingID string
}

// ConversationService answers queries against the ingested corpus and
// records interview bookings found in the conversation.
type ConversationService interface {
	// Answer processes one user query within a session. It never fails
	// because of a missing or degraded vector store; retrieval simply
	// contributes no context in that case.
	Answer(ctx context.Context, query, sessionID string) (*Answer, error)

	// BookInterview persists a fully-specified booking directly,
	// outside conversational extraction.
	BookInterview(ctx context.Context, booking domain.Booking) (string, error)

	// ClearSession drops the conversation history for a session.
	ClearSession(ctx context.Context, sessionID string) error
}

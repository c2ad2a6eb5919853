package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docuchat/internal/core/domain"
	"github.com/custodia-labs/docuchat/internal/core/ports/driven"
	"github.com/custodia-labs/docuchat/internal/core/ports/driving"
	"github.com/custodia-labs/docuchat/internal/logger"
)

const (
	// DefaultHistoryLimit caps how many prior turns are fetched per query.
	DefaultHistoryLimit = 10

	// DefaultTopK is how many fragments retrieval contributes per query.
	DefaultTopK = 3

	// directBookingSession marks bookings made outside a conversation.
	directBookingSession = "direct_booking"

	// noContext marks an empty retrieval result in the context block.
	noContext = "no relevant fragments"

	// contextExcerptLimit bounds how much context the summary embeds.
	contextExcerptLimit = 800
)

const (
	greetingResponse = "Hello! I'm your document assistant. I can help you search through your uploaded documents."

	gratitudeResponse = "You're welcome! Is there anything else you'd like to know about your documents?"

	notFoundResponse = "I searched through your uploaded documents but didn't find specific information " +
		"to answer your question. You might want to upload relevant documents or try rephrasing your question."
)

// schedulingKeywords gate booking extraction on the query.
var schedulingKeywords = []string{"schedule", "book", "interview", "meeting", "appointment"}

// responseRule pairs a predicate with a response builder. Rules are
// evaluated in order and exactly one fires.
type responseRule struct {
	applies func(query, context string) bool
	build   func(query, context string, fragmentCount int) string
}

var responseRules = []responseRule{
	{
		applies: func(query, _ string) bool {
			lower := strings.ToLower(query)
			return strings.Contains(lower, "hello") || containsWord(lower, "hi")
		},
		build: func(_, _ string, _ int) string { return greetingResponse },
	},
	{
		applies: func(query, _ string) bool {
			return strings.Contains(strings.ToLower(query), "thank")
		},
		build: func(_, _ string, _ int) string { return gratitudeResponse },
	},
	{
		applies: func(_, context string) bool { return context != noContext },
		build: func(_, context string, fragmentCount int) string {
			excerpt := context
			if len(excerpt) > contextExcerptLimit {
				excerpt = excerpt[:contextExcerptLimit]
			}
			return fmt.Sprintf(
				"I found %d relevant fragment(s) that match your query:\n\n%s...\n\n"+
					"This information was retrieved from your uploaded documents using semantic search.",
				fragmentCount, excerpt)
		},
	},
	{
		applies: func(_, _ string) bool { return true },
		build:   func(_, _ string, _ int) string { return notFoundResponse },
	},
}

// containsWord reports whether lower contains word on word boundaries.
func containsWord(lower, word string) bool {
	for start := 0; ; {
		i := strings.Index(lower[start:], word)
		if i < 0 {
			return false
		}
		i += start
		before := i == 0 || !isWordChar(lower[i-1])
		end := i + len(word)
		after := end == len(lower) || !isWordChar(lower[end])
		if before && after {
			return true
		}
		start = i + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

// Ensure ConversationService implements the interface.
var _ driving.ConversationService = (*ConversationService)(nil)

// ConversationService answers queries against the ingested corpus and
// records interview bookings found along the way.
type ConversationService struct {
	index        driven.SearchIndex
	sessions     driven.SessionStore
	catalog      driven.CatalogStore
	extractor    *BookingExtractor
	historyLimit int
	topK         int
}

// ConversationOption configures the service.
type ConversationOption func(*ConversationService)

// WithHistoryLimit overrides how many prior turns are fetched.
func WithHistoryLimit(limit int) ConversationOption {
	return func(s *ConversationService) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// WithTopK overrides how many fragments retrieval returns.
func WithTopK(topK int) ConversationOption {
	return func(s *ConversationService) {
		if topK > 0 {
			s.topK = topK
		}
	}
}

// NewConversationService creates a new conversation service.
func NewConversationService(
	index driven.SearchIndex,
	sessions driven.SessionStore,
	catalog driven.CatalogStore,
	extractor *BookingExtractor,
	opts ...ConversationOption,
) *ConversationService {
	s := &ConversationService{
		index:        index,
		sessions:     sessions,
		catalog:      catalog,
		extractor:    extractor,
		historyLimit: DefaultHistoryLimit,
		topK:         DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer processes one user query within a session.
func (s *ConversationService) Answer(ctx context.Context, query, sessionID string) (*driving.Answer, error) {
	logger.Section("Conversation")
	logger.Debug("Session %s query: %q", sessionID, query)

	// History fetch is best-effort; a session store outage means the
	// conversation proceeds without prior context.
	history, err := s.sessions.Recent(ctx, sessionID, s.historyLimit)
	if err != nil {
		logger.Warn("Fetching history for session %s: %v", sessionID, err)
	}
	logger.Debug("History: %d turns", len(history))

	results := s.index.Search(ctx, query, s.topK)
	contextBlock := formatContext(results)

	var response string
	for _, rule := range responseRules {
		if rule.applies(query, contextBlock) {
			response = rule.build(query, contextBlock, len(results))
			break
		}
	}

	var bookingID string
	if hasSchedulingIntent(query) {
		candidate := s.extractor.Extract(query)
		if candidate.Complete() {
			id, err := s.persistBooking(ctx, candidate, sessionID)
			if err != nil {
				return nil, fmt.Errorf("persisting booking: %w", err)
			}
			bookingID = id
			response += confirmation(candidate)
		}
	}

	// The two-turn append is best-effort as well.
	for _, turn := range []domain.Turn{
		{Role: domain.RoleUser, Content: query},
		{Role: domain.RoleAssistant, Content: response},
	} {
		if err := s.sessions.Append(ctx, sessionID, turn); err != nil {
			logger.Warn("Appending %s turn to session %s: %v", turn.Role, sessionID, err)
		}
	}

	sources := make([]string, len(results))
	for i, r := range results {
		sources[i] = fmt.Sprintf("Document (relevance: %.3f)", r.Score)
	}

	return &driving.Answer{
		Response:  response,
		Sources:   sources,
		BookingID: bookingID,
	}, nil
}

// BookInterview persists a fully-specified booking directly.
func (s *ConversationService) BookInterview(ctx context.Context, booking domain.Booking) (string, error) {
	if booking.Name == "" || booking.Email == "" {
		return "", fmt.Errorf("%w: booking requires name and email", domain.ErrInvalidInput)
	}
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.SessionID == "" {
		booking.SessionID = directBookingSession
	}

	err := s.catalog.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		return tx.InsertBooking(ctx, &booking)
	})
	if err != nil {
		return "", fmt.Errorf("storing booking: %w", err)
	}
	return booking.ID, nil
}

// ClearSession drops the conversation history for a session.
func (s *ConversationService) ClearSession(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

func (s *ConversationService) persistBooking(
	ctx context.Context, candidate domain.BookingCandidate, sessionID string,
) (string, error) {
	booking := domain.Booking{
		ID:        uuid.New().String(),
		Name:      candidate.Name,
		Email:     candidate.Email,
		Date:      candidate.Date,
		Time:      candidate.Time,
		SessionID: sessionID,
	}
	err := s.catalog.RunInTransaction(ctx, func(tx driven.CatalogTx) error {
		return tx.InsertBooking(ctx, &booking)
	})
	if err != nil {
		return "", err
	}
	logger.Debug("Booked interview %s for %s", booking.ID, booking.Name)
	return booking.ID, nil
}

// formatContext renders results into the context block, highest
// relevance first.
func formatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return noContext
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[Fragment %d - relevance %.3f]: %s", i+1, r.Score, r.Text)
	}
	return strings.Join(parts, "\n\n")
}

func hasSchedulingIntent(query string) bool {
	lower := strings.ToLower(query)
	for _, keyword := range schedulingKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func confirmation(candidate domain.BookingCandidate) string {
	when := candidate.Time
	if when == "" {
		when = "a suitable time"
	}
	return fmt.Sprintf("\n\n✅ Interview scheduled for %s at %s. Confirmation sent to %s.",
		candidate.Name, when, candidate.Email)
}

package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a turn written by the user.
	RoleUser Role = "user"

	// RoleAssistant marks a turn written by the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation session.
type Turn struct {
	// Role is who authored the turn.
	Role Role

	// Content is the message text.
	Content string
}

// BookingCandidate holds interview-scheduling details extracted from
// free text. All fields are optional; an empty string means the field
// was not matched. Extraction never fabricates a field it did not match.
type BookingCandidate struct {
	Name  string
	Email string
	Date  string
	Time  string
}

// Complete reports whether the candidate carries enough information
// to be persisted. Name and email are both required.
func (c BookingCandidate) Complete() bool {
	return c.Name != "" && c.Email != ""
}

// Booking is a persisted interview-scheduling record.
type Booking struct {
	// ID is the unique identifier for the booking.
	ID string

	// Name is the interviewee's name.
	Name string

	// Email is the interviewee's contact address.
	Email string

	// Date is the requested date, either a calendar date ("2026-09-02")
	// or a relative phrase ("next Monday").
	Date string

	// Time is the requested time of day ("10:30 AM").
	Time string

	// SessionID links to the conversation that produced the booking.
	SessionID string

	// CreatedAt is when the booking was recorded.
	CreatedAt time.Time
}

package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/docuchat/internal/core/domain"
)

// Booking field names used by the extraction rules.
const (
	fieldName  = "name"
	fieldEmail = "email"
	fieldTime  = "time"
	fieldDate  = "date"
)

// extractionRule binds one booking field to either a regex (the first
// capture group is the value) or a trigger keyword with a fixed value.
// Rules are evaluated in order; the first match per field wins.
type extractionRule struct {
	field   string
	pattern *regexp.Regexp
	keyword string
	// transform maps the raw match to the stored value. For keyword
	// rules the raw match is empty.
	transform func(match string, now time.Time) string
}

func literal(value string) func(string, time.Time) string {
	return func(_ string, _ time.Time) string { return value }
}

func verbatim(match string, _ time.Time) string {
	return strings.TrimSpace(match)
}

// Name patterns require a capitalized span of at least two words; the
// introducing keywords match case-insensitively.
var bookingRules = []extractionRule{
	{
		field:     fieldName,
		pattern:   regexp.MustCompile(`(?:(?i:name is|my name is|called))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
		transform: verbatim,
	},
	{
		field:     fieldName,
		pattern:   regexp.MustCompile(`(?:(?i:with|for))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`),
		transform: verbatim,
	},
	{
		field:     fieldName,
		pattern:   regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)(?:(?i:\s+for interview|\s+at|\s+on))`),
		transform: verbatim,
	},
	{
		field:     fieldEmail,
		pattern:   regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
		transform: verbatim,
	},
	{
		field:     fieldTime,
		pattern:   regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM)?)`),
		transform: verbatim,
	},
	{field: fieldTime, keyword: "morning", transform: literal("09:00 AM")},
	{field: fieldTime, keyword: "afternoon", transform: literal("02:00 PM")},
	{
		field:   fieldDate,
		keyword: "tomorrow",
		transform: func(_ string, now time.Time) string {
			return now.AddDate(0, 0, 1).Format("2006-01-02")
		},
	},
	{field: fieldDate, keyword: "monday", transform: literal("next Monday")},
	{field: fieldDate, keyword: "tuesday", transform: literal("next Tuesday")},
	{field: fieldDate, keyword: "wednesday", transform: literal("next Wednesday")},
	{field: fieldDate, keyword: "thursday", transform: literal("next Thursday")},
	{field: fieldDate, keyword: "friday", transform: literal("next Friday")},
}

// BookingExtractor pulls interview booking details out of free text.
type BookingExtractor struct {
	rules []extractionRule
	now   func() time.Time
}

// BookingOption configures the extractor.
type BookingOption func(*BookingExtractor)

// WithClock overrides the clock used for relative dates, for tests.
func WithClock(now func() time.Time) BookingOption {
	return func(e *BookingExtractor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewBookingExtractor creates an extractor with the default rule set.
func NewBookingExtractor(opts ...BookingOption) *BookingExtractor {
	e := &BookingExtractor{
		rules: bookingRules,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract applies the rules in order, first match per field wins.
// Fields no rule matches stay empty; nothing is guessed.
func (e *BookingExtractor) Extract(text string) domain.BookingCandidate {
	lower := strings.ToLower(text)
	now := e.now()

	values := make(map[string]string, 4)
	for _, rule := range e.rules {
		if _, done := values[rule.field]; done {
			continue
		}
		switch {
		case rule.pattern != nil:
			if m := rule.pattern.FindStringSubmatch(text); m != nil {
				values[rule.field] = rule.transform(m[1], now)
			}
		case rule.keyword != "":
			if strings.Contains(lower, rule.keyword) {
				values[rule.field] = rule.transform("", now)
			}
		}
	}

	return domain.BookingCandidate{
		Name:  values[fieldName],
		Email: values[fieldEmail],
		Date:  values[fieldDate],
		Time:  values[fieldTime],
	}
}

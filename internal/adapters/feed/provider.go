// Package feed consumes the external events/attendees provider that drives
// the sync reconcilers. The provider owns its own data model; this package
// exposes only the fields reconciliation needs.
package feed

import "context"

// Event is one occurrence in the external calendar. SeriesID ties recurring
// occurrences back to a local group; events without a recognized series are
// ignored by the reconciler.
type Event struct {
	ID          string
	SeriesID    string
	Name        string
	StartDate   string // RFC3339 or date-only; only the date portion is used
	Description string
}

// Attendee is one registration on an event, with the custom question answers
// that carry consent information.
type Attendee struct {
	Name            string
	Email           string
	Created         string
	TicketClassName string
	Answers         []Answer
}

// Answer is one custom-question response.
type Answer struct {
	QuestionID   string
	QuestionText string
	AnswerText   string
}

// Provider is the reconciler's view of the external system.
type Provider interface {
	ListOrgEvents(ctx context.Context) ([]Event, error)
	ListEventAttendees(ctx context.Context, eventID string) ([]Attendee, error)
}

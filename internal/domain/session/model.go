package session

import (
	"errors"
	"time"

	"hourlog/internal/domain/fy"
)

// Domain errors
var (
	ErrEmptyDate = errors.New("session date is required")
	ErrBadDate   = errors.New("session date must be YYYY-MM-DD")
)

// Session represents one occurrence of a group's activity on a calendar date.
// Registrations and hours are NEVER stored on the session: they are derived
// by counting and summing its entries at read time, so they cannot go stale.
type Session struct {
	ID        int
	LookupKey string // internal key; synthesized as "<date> <group key>" for synced sessions
	Name      string // optional display name
	Notes     string
	Date      string // YYYY-MM-DD, the only required field
	GroupID   int    // 0 when the session has no group
	EventID   string // optional link to one external event occurrence
}

// Validate checks if the Session has valid data.
// PRE: Session struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Date must be present and parseable as YYYY-MM-DD
func (s *Session) Validate() error {
	if s.Date == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse(fy.DateLayout, s.Date); err != nil {
		return ErrBadDate
	}
	return nil
}

// DisplayTitle returns the display name, falling back to the lookup key when
// no name was set.
func (s *Session) DisplayTitle() string {
	if s.Name != "" {
		return s.Name
	}
	return s.LookupKey
}

// HasGroup returns true if the session belongs to a group.
// INVARIANT: Session fields are not mutated
func (s *Session) HasGroup() bool {
	return s.GroupID > 0
}

// IsSynced returns true if the session is linked to an external event.
func (s *Session) IsSynced() bool {
	return s.EventID != ""
}

// FinancialYear returns the FY start year for the session's date.
// POST: ok is false when the date is malformed; callers skip such sessions
func (s *Session) FinancialYear() (int, bool) {
	return fy.OfDate(s.Date)
}

// IsOnOrAfter reports whether the session date is on or after the given day.
// Dates only; time-of-day is never considered.
// POST: Returns false for a malformed stored date
func (s *Session) IsOnOrAfter(day time.Time) bool {
	d, err := time.Parse(fy.DateLayout, s.Date)
	if err != nil {
		return false
	}
	cutoff := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(cutoff)
}

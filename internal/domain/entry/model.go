package entry

import (
	"errors"
)

// DefaultCount is the number of attendees one entry represents unless stated
// otherwise (a family signing in together may carry a higher count).
const DefaultCount = 1

// Domain errors
var (
	ErrNoSession      = errors.New("entry must reference a session")
	ErrNoProfile      = errors.New("entry must reference a profile")
	ErrNegativeHours  = errors.New("entry hours cannot be negative")
	ErrNonPositiveQty = errors.New("entry count must be at least 1")
)

// Entry links a profile to a session. The same row carries both meanings over
// its lifetime: it is a registration until CheckedIn flips, an attendance
// record after. There is no separate registration entity.
//
// Notes is free text that also carries hashtag annotations (#New, #Child,
// #Regular, #NoPhoto); see the tags package.
type Entry struct {
	ID        int
	SessionID int
	ProfileID int
	Count     int     // attendees represented, defaults to 1
	CheckedIn bool    // defaults to false
	Hours     float64 // defaults to 0; summed per session at read time
	Notes     string
}

// Validate checks if the Entry has valid data for a write.
// PRE: Entry struct is initialized, defaults applied
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: SessionID and ProfileID must be set; Count >= 1; Hours >= 0
func (e *Entry) Validate() error {
	if e.SessionID <= 0 {
		return ErrNoSession
	}
	if e.ProfileID <= 0 {
		return ErrNoProfile
	}
	if e.Count < 1 {
		return ErrNonPositiveQty
	}
	if e.Hours < 0 {
		return ErrNegativeHours
	}
	return nil
}

// ApplyDefaults fills zero-valued optional fields for a new entry.
// POST: Count is at least DefaultCount
func (e *Entry) ApplyDefaults() {
	if e.Count == 0 {
		e.Count = DefaultCount
	}
}

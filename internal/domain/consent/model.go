package consent

import (
	"errors"
	"strings"
)

// Record types. The set is open, operators can add choice values in the
// store, but these four drive behavior in code.
const (
	TypePrivacy    = "Privacy Consent"
	TypePhoto      = "Photo Consent"
	TypeMembership = "Charity Membership"
	TypeCard       = "Discount Card"
)

// Record statuses.
const (
	StatusAccepted = "Accepted"
	StatusDeclined = "Declined"
	StatusInvited  = "Invited"
	StatusExpired  = "Expired"
)

// BuiltinTypes and BuiltinStatuses are the fallback choice sets used when the
// backing store cannot enumerate its column choices.
var (
	BuiltinTypes    = []string{TypePrivacy, TypePhoto, TypeMembership, TypeCard}
	BuiltinStatuses = []string{StatusAccepted, StatusDeclined, StatusInvited, StatusExpired}
)

// Domain errors
var (
	ErrNoProfile   = errors.New("consent record must reference a profile")
	ErrEmptyType   = errors.New("consent record type is required")
	ErrEmptyStatus = errors.New("consent record status is required")
)

// Record is one consent/membership fact about a profile. At most one record
// per (profile, type) is kept current: new information overwrites in place,
// latest write wins, no history is modeled.
type Record struct {
	ID        int
	ProfileID int
	Type      string
	Status    string
	Date      string // YYYY-MM-DD
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Record) Validate() error {
	if r.ProfileID <= 0 {
		return ErrNoProfile
	}
	if strings.TrimSpace(r.Type) == "" {
		return ErrEmptyType
	}
	if strings.TrimSpace(r.Status) == "" {
		return ErrEmptyStatus
	}
	return nil
}

// IsAcceptedMembership reports whether this record makes its profile a
// charity member. Membership is a discrete consent state, deliberately
// independent of any hours threshold.
// INVARIANT: Record fields are not mutated
func (r *Record) IsAcceptedMembership() bool {
	return r.Type == TypeMembership && r.Status == StatusAccepted
}

// IsAcceptedPhoto reports whether the profile has accepted photo consent.
func (r *Record) IsAcceptedPhoto() bool {
	return r.Type == TypePhoto && r.Status == StatusAccepted
}

// StatusFromAnswer maps a raw feed answer to a record status. Only the exact
// lowercase literal "accepted" counts as acceptance.
func StatusFromAnswer(answer string) string {
	if answer == "accepted" {
		return StatusAccepted
	}
	return StatusDeclined
}

package profile

import (
	"errors"
	"strings"

	"hourlog/internal/domain/ident"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyName    = errors.New("profile name cannot be empty")
	ErrInvalidEmail = errors.New("profile email must contain '@'")
)

// Profile represents a volunteer (or a whole-group registration when IsGroup
// is set). Hours are never stored on the profile; they are derived from entry
// records at read time.
type Profile struct {
	ID        int
	Name      string // display name, freely editable
	Email     string // optional
	MatchName string // lowercased name used only for external-feed matching; survives display-name edits
	IsGroup   bool   // true for group registrations, excluded from individual aggregates
	Username  string // optional external username, maps an authenticated user to this profile
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must be non-empty; Email, when present, must contain '@'
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("profile name cannot exceed 100 characters")
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// Slug returns the URL slug for the profile. Not guaranteed unique; two
// profiles with the same name share a slug and lookups return the first.
// INVARIANT: Profile fields are not mutated
func (p *Profile) Slug() string {
	return ident.ToSlug(p.Name)
}

// MatchKey returns the lowercased key used for feed-name matching, preferring
// the dedicated MatchName column and falling back to the display name.
// INVARIANT: Profile fields are not mutated
func (p *Profile) MatchKey() string {
	if p.MatchName != "" {
		return strings.ToLower(p.MatchName)
	}
	return strings.ToLower(p.Name)
}

// NormalizeName lowercases a feed display name for matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

package group

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxKeyLength  = 50
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyKey   = errors.New("group key cannot be empty")
	ErrKeyTooLong = errors.New("group key cannot exceed 50 characters")
)

// Group represents a volunteering group (a recurring activity such as
// "Saturday Dig"). Sessions join to groups by LookupKey, so the key must stay
// short, stable and unique; Name is the human-facing label and may change
// freely.
type Group struct {
	ID          int
	LookupKey   string // short internal key, case-insensitively unique, used in URLs and joins
	Name        string // display name; falls back to LookupKey when unset
	Description string // markdown, rendered on the group detail view
	SeriesID    string // optional link to the external feed's recurring series
}

// Validate checks if the Group has valid data.
// PRE: Group struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: LookupKey must be non-empty and within length limits
func (g *Group) Validate() error {
	if strings.TrimSpace(g.LookupKey) == "" {
		return ErrEmptyKey
	}
	if len(g.LookupKey) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if len(g.Name) > MaxNameLength {
		return errors.New("group name cannot exceed 100 characters")
	}
	return nil
}

// DisplayName returns Name, falling back to LookupKey when no display name
// has been set (legacy rows often only carry the key).
// INVARIANT: Group fields are not mutated
func (g *Group) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.LookupKey
}

// KeyEquals reports whether key identifies this group, case-insensitively.
// INVARIANT: Group fields are not mutated
func (g *Group) KeyEquals(key string) bool {
	return strings.EqualFold(g.LookupKey, key)
}

// HasSeries returns true if the group is linked to an external event series.
func (g *Group) HasSeries() bool {
	return g.SeriesID != ""
}

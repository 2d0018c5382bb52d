package regular

import "errors"

// Domain errors
var (
	ErrNoProfile = errors.New("regular must reference a profile")
	ErrNoGroup   = errors.New("regular must reference a group")
)

// Regular is a durable marker that a profile is expected at every session of
// a group. It drives entry pre-population and missing-regulars reconciliation.
type Regular struct {
	ID        int
	ProfileID int
	GroupID   int
}

// Validate checks if the Regular has valid data.
// PRE: Regular struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Regular) Validate() error {
	if r.ProfileID <= 0 {
		return ErrNoProfile
	}
	if r.GroupID <= 0 {
		return ErrNoGroup
	}
	return nil
}

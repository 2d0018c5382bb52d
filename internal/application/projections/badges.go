package projections

import (
	"hourlog/internal/domain/consent"
)

// Badges carries the consent-derived statuses per profile: charity membership
// and discount-card state. This is a discrete consent state, decoupled from
// the hours-based threshold highlight.
type Badges struct {
	MemberIDs  map[int]bool
	CardStatus map[int]string
}

// IsMember reports whether a profile holds an accepted charity membership.
func (b Badges) IsMember(profileID int) bool {
	return b.MemberIDs[profileID]
}

// ResolveBadges derives badge state from consent records in one pass. A
// profile is a member iff it has an accepted Charity Membership record; card
// status is the status of its Discount Card record, last seen winning should
// duplicates exist.
func ResolveBadges(records []consent.Record) Badges {
	b := Badges{MemberIDs: map[int]bool{}, CardStatus: map[int]string{}}
	for _, r := range records {
		if r.IsAcceptedMembership() {
			b.MemberIDs[r.ProfileID] = true
		}
		if r.Type == consent.TypeCard {
			b.CardStatus[r.ProfileID] = r.Status
		}
	}
	return b
}

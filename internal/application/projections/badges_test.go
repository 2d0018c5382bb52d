package projections

import (
	"testing"

	"hourlog/internal/domain/consent"
)

// TestResolveBadges verifies membership requires an accepted record and card
// status carries through regardless of status value.
func TestResolveBadges(t *testing.T) {
	records := []consent.Record{
		{ID: 1, ProfileID: 1, Type: consent.TypeMembership, Status: consent.StatusAccepted},
		{ID: 2, ProfileID: 2, Type: consent.TypeMembership, Status: consent.StatusDeclined},
		{ID: 3, ProfileID: 3, Type: consent.TypeCard, Status: consent.StatusExpired},
	}

	b := ResolveBadges(records)
	if !b.IsMember(1) {
		t.Error("accepted membership should make profile 1 a member")
	}
	if b.IsMember(2) {
		t.Error("declined membership must not make profile 2 a member")
	}
	if b.IsMember(3) {
		t.Error("card record alone must not grant membership")
	}
	if b.CardStatus[3] != consent.StatusExpired {
		t.Errorf("card status = %q, want Expired", b.CardStatus[3])
	}
}

// TestResolveBadgesLastCardWins verifies duplicate card records resolve to
// the last seen status.
func TestResolveBadgesLastCardWins(t *testing.T) {
	records := []consent.Record{
		{ID: 1, ProfileID: 5, Type: consent.TypeCard, Status: consent.StatusInvited},
		{ID: 2, ProfileID: 5, Type: consent.TypeCard, Status: consent.StatusAccepted},
	}
	b := ResolveBadges(records)
	if b.CardStatus[5] != consent.StatusAccepted {
		t.Errorf("card status = %q, want last-seen Accepted", b.CardStatus[5])
	}
}

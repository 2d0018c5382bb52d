package projections

import (
	"testing"

	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/group"
	"hourlog/internal/domain/session"
)

// TestEnrichSessionsComputesDerivedValues covers the 3 + 2.5 hour scenario:
// two entries on one session yield hours 5.5 and registrations 2.
func TestEnrichSessionsComputesDerivedValues(t *testing.T) {
	sessions := []session.Session{
		{ID: 1, Date: "2025-04-02", GroupID: 10},
		{ID: 2, Date: "2025-04-09", GroupID: 10},
	}
	entries := []entry.Entry{
		{ID: 1, SessionID: 1, ProfileID: 5, Hours: 3},
		{ID: 2, SessionID: 1, ProfileID: 6, Hours: 2.5},
	}
	groups := []group.Group{{ID: 10, LookupKey: "sat", Name: "Saturday Dig"}}

	enriched := EnrichSessions(sessions, entries, groups)
	if len(enriched) != 2 {
		t.Fatalf("got %d sessions, want 2", len(enriched))
	}

	first := enriched[0]
	if first.Hours != 5.5 || first.Registrations != 2 {
		t.Errorf("session 1: hours=%v registrations=%d, want 5.5/2", first.Hours, first.Registrations)
	}
	if first.GroupName != "Saturday Dig" {
		t.Errorf("group name = %q, want display name over lookup key", first.GroupName)
	}

	// A session with zero entries reports zeros, never absent values.
	second := enriched[1]
	if second.Hours != 0 || second.Registrations != 0 {
		t.Errorf("empty session: hours=%v registrations=%d, want 0/0", second.Hours, second.Registrations)
	}
}

// TestEnrichSessionsOmitsGroupNameWithoutGroup verifies ungrouped sessions
// carry an empty group name rather than a placeholder.
func TestEnrichSessionsOmitsGroupNameWithoutGroup(t *testing.T) {
	sessions := []session.Session{{ID: 1, Date: "2025-05-01"}}
	groups := []group.Group{{ID: 10, LookupKey: "sat"}}

	enriched := EnrichSessions(sessions, nil, groups)
	if enriched[0].GroupName != "" {
		t.Errorf("group name = %q, want empty", enriched[0].GroupName)
	}
}

// TestEnrichSessionsIsIdempotent verifies repeated calls over the same input
// produce identical output.
func TestEnrichSessionsIsIdempotent(t *testing.T) {
	sessions := []session.Session{{ID: 1, Date: "2025-04-02"}}
	entries := []entry.Entry{{ID: 1, SessionID: 1, Hours: 1.25}}

	a := EnrichSessions(sessions, entries, nil)
	b := EnrichSessions(sessions, entries, nil)
	if a[0] != b[0] {
		t.Errorf("outputs differ: %+v vs %+v", a[0], b[0])
	}
}

// TestRoundHours verifies 1-decimal round-half-up.
func TestRoundHours(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{5.55, 5.6},
		{5.54, 5.5},
		{5.45, 5.5},
		{0, 0},
		{2.5, 2.5},
	}
	for _, c := range cases {
		if got := RoundHours(c.in); got != c.want {
			t.Errorf("RoundHours(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

// TestSortSessionsByDate verifies newest-first ordering.
func TestSortSessionsByDate(t *testing.T) {
	sessions := []EnrichedSession{
		{Session: session.Session{ID: 1, Date: "2025-04-02"}},
		{Session: session.Session{ID: 2, Date: "2025-06-01"}},
		{Session: session.Session{ID: 3, Date: "2024-12-25"}},
	}
	SortSessionsByDate(sessions)
	if sessions[0].ID != 2 || sessions[1].ID != 1 || sessions[2].ID != 3 {
		t.Errorf("order = %d,%d,%d; want 2,1,3", sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
}

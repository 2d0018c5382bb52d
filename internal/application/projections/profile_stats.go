package projections

import (
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/fy"
	"hourlog/internal/domain/session"
)

// MembershipHoursThreshold is the this-FY hour count at which a profile is
// highlighted as having earned membership. The highlight is a recomputed
// threshold check, deliberately separate from the consent-based membership
// state resolved from records.
const MembershipHoursThreshold = 15

// ProfileStats are one profile's derived financial-year values. Session
// counts are distinct sessions, not entry counts.
type ProfileStats struct {
	HoursThisFY    float64
	HoursLastFY    float64
	SessionsThisFY int
	SessionsLastFY int
}

// MeetsThreshold reports whether this FY's hours reach the membership
// highlight threshold.
func (s ProfileStats) MeetsThreshold() bool {
	return s.HoursThisFY >= MembershipHoursThreshold
}

// AccumulateProfileStats computes per-profile FY stats in a single pass over
// entries. Entries whose session is missing are skipped silently: an orphaned
// entry contributes nothing rather than failing the read. When groupID is
// non-zero, only entries on that group's sessions count, which filters hours
// and session counts consistently.
// POST: Profiles absent from the result have all-zero stats by construction
func AccumulateProfileStats(entries []entry.Entry, sessions []session.Session, current fy.Window, groupID int) map[int]ProfileStats {
	byID := make(map[int]session.Session, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s
	}

	var eligible map[int]bool
	if groupID > 0 {
		eligible = make(map[int]bool)
		for _, s := range sessions {
			if s.GroupID == groupID {
				eligible[s.ID] = true
			}
		}
	}

	type acc struct {
		stats    ProfileStats
		thisSeen map[int]bool
		lastSeen map[int]bool
	}
	accs := map[int]*acc{}

	for _, e := range entries {
		sess, ok := byID[e.SessionID]
		if !ok {
			continue
		}
		if eligible != nil && !eligible[e.SessionID] {
			continue
		}
		year, ok := sess.FinancialYear()
		if !ok {
			continue
		}

		a := accs[e.ProfileID]
		if a == nil {
			a = &acc{thisSeen: map[int]bool{}, lastSeen: map[int]bool{}}
			accs[e.ProfileID] = a
		}
		switch year {
		case current.StartYear:
			a.stats.HoursThisFY += e.Hours
			a.thisSeen[e.SessionID] = true
		case current.StartYear - 1:
			a.stats.HoursLastFY += e.Hours
			a.lastSeen[e.SessionID] = true
		}
	}

	stats := make(map[int]ProfileStats, len(accs))
	for id, a := range accs {
		a.stats.HoursThisFY = RoundHours(a.stats.HoursThisFY)
		a.stats.HoursLastFY = RoundHours(a.stats.HoursLastFY)
		a.stats.SessionsThisFY = len(a.thisSeen)
		a.stats.SessionsLastFY = len(a.lastSeen)
		stats[id] = a.stats
	}
	return stats
}

package projections

import (
	"math"
	"sort"

	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/group"
	"hourlog/internal/domain/session"
)

// EnrichedSession is a session with its derived values attached.
// Registrations and hours are never stored anywhere; they are recomputed from
// entries on every read so they can never go stale.
type EnrichedSession struct {
	session.Session
	GroupName     string  // empty when the session has no group
	Registrations int     // count of the session's entries
	Hours         float64 // 1-decimal rounded sum of the entries' hours
}

// RoundHours rounds an hour total to one decimal place, half up. Every hour
// sum presented to callers goes through this.
func RoundHours(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// EnrichSessions computes the derived values for each session. Pure: no
// storage access, identical inputs produce identical output.
// POST: Every input session appears exactly once; sessions with no entries
// report zero registrations and zero hours, never absent values
func EnrichSessions(sessions []session.Session, entries []entry.Entry, groups []group.Group) []EnrichedSession {
	groupNames := make(map[int]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.DisplayName()
	}

	type stats struct {
		registrations int
		hours         float64
	}
	bySession := make(map[int]stats, len(sessions))
	for _, e := range entries {
		s := bySession[e.SessionID]
		s.registrations++
		s.hours += e.Hours
		bySession[e.SessionID] = s
	}

	enriched := make([]EnrichedSession, 0, len(sessions))
	for _, sess := range sessions {
		st := bySession[sess.ID]
		es := EnrichedSession{
			Session:       sess,
			Registrations: st.registrations,
			Hours:         RoundHours(st.hours),
		}
		if sess.HasGroup() {
			es.GroupName = groupNames[sess.GroupID]
		}
		enriched = append(enriched, es)
	}
	return enriched
}

// SortSessionsByDate orders sessions newest first. Dates are ISO strings so
// lexicographic comparison is chronological.
func SortSessionsByDate(sessions []EnrichedSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date > sessions[j].Date
	})
}

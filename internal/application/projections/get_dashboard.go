package projections

import (
	"context"

	"hourlog/internal/domain/fy"
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Now fy.Window
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Sessions SessionLister
	Entries  EntryLister
}

// FYStats are one financial year's top-line numbers. All of them are pure set
// cardinality or sum operations over that FY's sessions and entries.
type FYStats struct {
	Key          string
	Hours        float64
	Sessions     int
	ActiveGroups int // distinct groups with at least one session this FY
	Volunteers   int // distinct profiles with at least one entry this FY
}

// DashboardResult carries current and previous FY stats. Only these two
// windows are ever rendered.
type DashboardResult struct {
	ThisFY FYStats
	LastFY FYStats
}

// QueryGetDashboard computes the top-line numbers for the current and
// previous financial years.
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	sessions, err := deps.Sessions.List(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	entries, err := deps.Entries.List(ctx)
	if err != nil {
		return DashboardResult{}, err
	}

	this := fyAccum{window: query.Now}
	last := fyAccum{window: query.Now.Previous()}

	sessionFY := map[int]int{}
	for _, s := range sessions {
		year, ok := s.FinancialYear()
		if !ok {
			continue
		}
		sessionFY[s.ID] = year
		this.addSession(year, s.GroupID)
		last.addSession(year, s.GroupID)
	}
	for _, e := range entries {
		year, ok := sessionFY[e.SessionID]
		if !ok {
			continue // orphaned entry, excluded from every total
		}
		this.addEntry(year, e.ProfileID, e.Hours)
		last.addEntry(year, e.ProfileID, e.Hours)
	}

	return DashboardResult{ThisFY: this.stats(), LastFY: last.stats()}, nil
}

type fyAccum struct {
	window   fy.Window
	sessions int
	groups   map[int]bool
	profiles map[int]bool
	hours    float64
}

func (a *fyAccum) addSession(year, groupID int) {
	if year != a.window.StartYear {
		return
	}
	a.sessions++
	if groupID > 0 {
		if a.groups == nil {
			a.groups = map[int]bool{}
		}
		a.groups[groupID] = true
	}
}

func (a *fyAccum) addEntry(year, profileID int, hours float64) {
	if year != a.window.StartYear {
		return
	}
	if a.profiles == nil {
		a.profiles = map[int]bool{}
	}
	a.profiles[profileID] = true
	a.hours += hours
}

func (a *fyAccum) stats() FYStats {
	return FYStats{
		Key:          a.window.Key(),
		Hours:        RoundHours(a.hours),
		Sessions:     a.sessions,
		ActiveGroups: len(a.groups),
		Volunteers:   len(a.profiles),
	}
}

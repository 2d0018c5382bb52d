package projections

import (
	"context"
)

// GetSessionsQuery carries input for the session list projection.
type GetSessionsQuery struct {
	GroupID int // 0 = all groups
	FYStart int // 0 = all years; otherwise the FY start year to keep
}

// GetSessionsDeps holds dependencies for the session list projection.
type GetSessionsDeps struct {
	Sessions SessionLister
	Entries  EntryLister
	Groups   GroupLister
}

// QueryGetSessions returns enriched sessions newest first, optionally
// filtered by group and financial year.
func QueryGetSessions(ctx context.Context, query GetSessionsQuery, deps GetSessionsDeps) ([]EnrichedSession, error) {
	sessions, err := deps.Sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := deps.Entries.List(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := deps.Groups.List(ctx)
	if err != nil {
		return nil, err
	}

	enriched := EnrichSessions(sessions, entries, groups)

	filtered := make([]EnrichedSession, 0, len(enriched))
	for _, s := range enriched {
		if query.GroupID > 0 && s.GroupID != query.GroupID {
			continue
		}
		if query.FYStart > 0 {
			year, ok := s.FinancialYear()
			if !ok || year != query.FYStart {
				continue
			}
		}
		filtered = append(filtered, s)
	}

	SortSessionsByDate(filtered)
	return filtered, nil
}

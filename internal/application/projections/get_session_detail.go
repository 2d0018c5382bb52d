package projections

import (
	"context"

	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/faults"
)

// GetSessionDetailQuery carries input for the session detail projection.
type GetSessionDetailQuery struct {
	SessionID int
}

// GetSessionDetailDeps holds dependencies for the session detail projection.
type GetSessionDetailDeps struct {
	Sessions SessionLister
	Entries  EntryLister
	Groups   GroupLister
	Profiles ProfileLister
}

// SessionEntry is one entry joined with its profile for display.
type SessionEntry struct {
	entry.Entry
	ProfileName string
	ProfileSlug string
	IsGroup     bool
}

// SessionDetailResult carries the output of the session detail projection.
type SessionDetailResult struct {
	Session EnrichedSession
	Entries []SessionEntry
}

// QueryGetSessionDetail returns one session with derived values and its
// entries joined to profile names.
func QueryGetSessionDetail(ctx context.Context, query GetSessionDetailQuery, deps GetSessionDetailDeps) (SessionDetailResult, error) {
	sessions, err := deps.Sessions.List(ctx)
	if err != nil {
		return SessionDetailResult{}, err
	}
	entries, err := deps.Entries.List(ctx)
	if err != nil {
		return SessionDetailResult{}, err
	}
	groups, err := deps.Groups.List(ctx)
	if err != nil {
		return SessionDetailResult{}, err
	}
	profiles, err := deps.Profiles.List(ctx)
	if err != nil {
		return SessionDetailResult{}, err
	}

	enriched := EnrichSessions(sessions, entries, groups)
	var found *EnrichedSession
	for i := range enriched {
		if enriched[i].ID == query.SessionID {
			found = &enriched[i]
			break
		}
	}
	if found == nil {
		return SessionDetailResult{}, faults.NotFoundf("session %d not found", query.SessionID)
	}

	names := make(map[int]string, len(profiles))
	slugs := make(map[int]string, len(profiles))
	isGroup := make(map[int]bool, len(profiles))
	for _, p := range profiles {
		names[p.ID] = p.Name
		slugs[p.ID] = p.Slug()
		isGroup[p.ID] = p.IsGroup
	}

	result := SessionDetailResult{Session: *found}
	for _, e := range entries {
		if e.SessionID != query.SessionID {
			continue
		}
		result.Entries = append(result.Entries, SessionEntry{
			Entry:       e,
			ProfileName: names[e.ProfileID],
			ProfileSlug: slugs[e.ProfileID],
			IsGroup:     isGroup[e.ProfileID],
		})
	}
	return result, nil
}

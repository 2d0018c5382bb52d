package projections

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"

	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/fy"
	"hourlog/internal/domain/group"
	"hourlog/internal/domain/tags"
)

// GetGroupDetailQuery carries input for the group detail projection.
type GetGroupDetailQuery struct {
	LookupKey string
	Now       fy.Window // current FY window, resolved by the caller
}

// GetGroupDetailDeps holds dependencies for the group detail projection.
type GetGroupDetailDeps struct {
	Groups   GroupLister
	Sessions SessionLister
	Entries  EntryLister
}

// GroupDetailResult carries the output of the group detail projection.
// NewVolunteers and Children are tag-derived counts computed at read time
// from entry notes, never stored.
type GroupDetailResult struct {
	Group           group.Group
	DescriptionHTML string
	Sessions        []EnrichedSession
	HoursThisFY     float64
	SessionsThisFY  int
	NewVolunteers   int
	Children        int
}

// QueryGetGroupDetail returns one group with its sessions and tag-derived
// stats for the current financial year.
func QueryGetGroupDetail(ctx context.Context, query GetGroupDetailQuery, deps GetGroupDetailDeps) (GroupDetailResult, error) {
	groups, err := deps.Groups.List(ctx)
	if err != nil {
		return GroupDetailResult{}, err
	}
	var found *group.Group
	for i := range groups {
		if groups[i].KeyEquals(query.LookupKey) {
			found = &groups[i]
			break
		}
	}
	if found == nil {
		return GroupDetailResult{}, faults.NotFoundf("group %q not found", query.LookupKey)
	}

	sessions, err := deps.Sessions.List(ctx)
	if err != nil {
		return GroupDetailResult{}, err
	}
	entries, err := deps.Entries.List(ctx)
	if err != nil {
		return GroupDetailResult{}, err
	}

	enriched := EnrichSessions(sessions, entries, groups)
	result := GroupDetailResult{Group: *found, DescriptionHTML: renderMarkdown(found.Description)}

	groupSessions := map[int]bool{}
	for _, s := range enriched {
		if s.GroupID != found.ID {
			continue
		}
		result.Sessions = append(result.Sessions, s)
		groupSessions[s.ID] = true
		if year, ok := s.FinancialYear(); ok && year == query.Now.StartYear {
			result.HoursThisFY += s.Hours
			result.SessionsThisFY++
		}
	}
	result.HoursThisFY = RoundHours(result.HoursThisFY)
	SortSessionsByDate(result.Sessions)

	for _, e := range entries {
		if !groupSessions[e.SessionID] {
			continue
		}
		if tags.Has(e.Notes, tags.New) {
			result.NewVolunteers++
		}
		if tags.Has(e.Notes, tags.Child) {
			result.Children++
		}
	}
	return result, nil
}

// renderMarkdown converts a group description to HTML. An empty description
// or a failed conversion renders as empty, never as an error page.
func renderMarkdown(md string) string {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return ""
	}
	return buf.String()
}

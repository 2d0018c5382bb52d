package projections

import (
	"context"
	"sort"

	"hourlog/internal/domain/fy"
	"hourlog/internal/domain/profile"
)

// GetProfilesQuery carries input for the profile list projection.
type GetProfilesQuery struct {
	GroupID int // 0 = all groups; otherwise restricts stats to that group's sessions
	Now     fy.Window
}

// GetProfilesDeps holds dependencies for the profile list projection.
type GetProfilesDeps struct {
	Profiles ProfileLister
	Entries  EntryLister
	Sessions SessionLister
	Records  RecordLister
}

// ProfileSummary is one profile with its derived FY stats and badges.
type ProfileSummary struct {
	profile.Profile
	Slug       string
	Stats      ProfileStats
	IsMember   bool
	CardStatus string
	Highlight  bool // hours threshold reached this FY
}

// QueryGetProfiles returns every profile with recomputed FY stats, badge
// state and the threshold highlight, sorted by name.
func QueryGetProfiles(ctx context.Context, query GetProfilesQuery, deps GetProfilesDeps) ([]ProfileSummary, error) {
	profiles, err := deps.Profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := deps.Entries.List(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := deps.Sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := deps.Records.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := AccumulateProfileStats(entries, sessions, query.Now, query.GroupID)
	badges := ResolveBadges(records)

	summaries := make([]ProfileSummary, 0, len(profiles))
	for _, p := range profiles {
		st := stats[p.ID]
		summaries = append(summaries, ProfileSummary{
			Profile:    p,
			Slug:       p.Slug(),
			Stats:      st,
			IsMember:   badges.IsMember(p.ID),
			CardStatus: badges.CardStatus[p.ID],
			Highlight:  st.MeetsThreshold(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

package projections

import (
	"context"

	"hourlog/internal/domain/consent"
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/fy"
	"hourlog/internal/domain/profile"
)

// GetProfileDetailQuery carries input for the profile detail projection.
// Either Slug or ProfileID selects the profile; ProfileID wins when both are
// set.
type GetProfileDetailQuery struct {
	ProfileID int
	Slug      string
	Now       fy.Window
}

// GetProfileDetailDeps holds dependencies for the profile detail projection.
type GetProfileDetailDeps struct {
	Profiles ProfileLister
	Entries  EntryLister
	Sessions SessionLister
	Records  RecordLister
}

// ProfileEntry is one of the profile's entries joined with its session.
type ProfileEntry struct {
	entry.Entry
	SessionDate string
	SessionName string
}

// ProfileDetailResult carries the output of the profile detail projection.
type ProfileDetailResult struct {
	Profile    profile.Profile
	Stats      ProfileStats
	IsMember   bool
	CardStatus string
	Highlight  bool
	Entries    []ProfileEntry
	Records    []consent.Record
}

// QueryGetProfileDetail returns one profile with recomputed stats, badges,
// its entry history joined to sessions, and its consent records.
func QueryGetProfileDetail(ctx context.Context, query GetProfileDetailQuery, deps GetProfileDetailDeps) (ProfileDetailResult, error) {
	profiles, err := deps.Profiles.List(ctx)
	if err != nil {
		return ProfileDetailResult{}, err
	}
	var found *profile.Profile
	for i := range profiles {
		if query.ProfileID > 0 && profiles[i].ID == query.ProfileID {
			found = &profiles[i]
			break
		}
		if query.ProfileID == 0 && profiles[i].Slug() == query.Slug {
			found = &profiles[i]
			break
		}
	}
	if found == nil {
		return ProfileDetailResult{}, faults.NotFoundf("profile not found")
	}

	entries, err := deps.Entries.List(ctx)
	if err != nil {
		return ProfileDetailResult{}, err
	}
	sessions, err := deps.Sessions.List(ctx)
	if err != nil {
		return ProfileDetailResult{}, err
	}
	records, err := deps.Records.List(ctx)
	if err != nil {
		return ProfileDetailResult{}, err
	}

	stats := AccumulateProfileStats(entries, sessions, query.Now, 0)[found.ID]
	badges := ResolveBadges(records)

	result := ProfileDetailResult{
		Profile:    *found,
		Stats:      stats,
		IsMember:   badges.IsMember(found.ID),
		CardStatus: badges.CardStatus[found.ID],
		Highlight:  stats.MeetsThreshold(),
	}

	dates := map[int]string{}
	names := map[int]string{}
	for _, s := range sessions {
		dates[s.ID] = s.Date
		names[s.ID] = s.DisplayTitle()
	}
	for _, e := range entries {
		if e.ProfileID != found.ID {
			continue
		}
		result.Entries = append(result.Entries, ProfileEntry{
			Entry:       e,
			SessionDate: dates[e.SessionID],
			SessionName: names[e.SessionID],
		})
	}
	for _, r := range records {
		if r.ProfileID == found.ID {
			result.Records = append(result.Records, r)
		}
	}
	return result, nil
}

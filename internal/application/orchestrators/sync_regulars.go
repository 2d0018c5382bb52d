package orchestrators

import (
	"context"
	"log/slog"

	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/regular"
	"hourlog/internal/domain/session"
	"hourlog/internal/domain/tags"
)

// RegularStore is the regulars access the reconciler needs.
type RegularStore interface {
	ListByGroup(ctx context.Context, groupID int) ([]regular.Regular, error)
}

// RegularSessionStore is the session read the regulars reconciler needs.
type RegularSessionStore interface {
	GetByID(ctx context.Context, id int) (session.Session, error)
}

// SyncRegularsInput carries input for the regulars reconciliation.
type SyncRegularsInput struct {
	SessionID int
}

// SyncRegularsDeps holds dependencies for ExecuteSyncRegulars.
type SyncRegularsDeps struct {
	SessionStore RegularSessionStore
	RegularStore RegularStore
	EntryStore   SyncEntryStore
}

// SyncRegularsResult reports what one run did.
type SyncRegularsResult struct {
	Regulars   int
	NewEntries int
}

// ExecuteSyncRegulars pre-populates entries for a session from its group's
// regulars. Every regular without an existing entry gets one tagged as a
// regular, plus the first-appearance tag when this is the profile's first
// entry anywhere. Idempotent via the same (profile, session) key as the
// attendee reconciler.
func ExecuteSyncRegulars(ctx context.Context, input SyncRegularsInput, deps SyncRegularsDeps) (SyncRegularsResult, error) {
	s, err := deps.SessionStore.GetByID(ctx, input.SessionID)
	if err != nil {
		return SyncRegularsResult{}, faults.NotFoundf("session %d not found", input.SessionID)
	}
	if !s.HasGroup() {
		return SyncRegularsResult{}, faults.Invalidf("session %d has no group, so no regulars apply", s.ID)
	}

	regulars, err := deps.RegularStore.ListByGroup(ctx, s.GroupID)
	if err != nil {
		return SyncRegularsResult{}, err
	}
	entries, err := deps.EntryStore.List(ctx)
	if err != nil {
		return SyncRegularsResult{}, err
	}

	havePair := map[int]bool{} // profileID -> entry exists on this session
	profileSess := map[int]map[int]bool{}
	for _, e := range entries {
		if e.SessionID == s.ID {
			havePair[e.ProfileID] = true
		}
		if profileSess[e.ProfileID] == nil {
			profileSess[e.ProfileID] = map[int]bool{}
		}
		profileSess[e.ProfileID][e.SessionID] = true
	}

	result := SyncRegularsResult{Regulars: len(regulars)}
	for _, r := range regulars {
		if havePair[r.ProfileID] {
			continue
		}
		notes := tags.Append("", tags.Regular)
		if firstAppearance(profileSess[r.ProfileID], s.ID) {
			notes = tags.Append(notes, tags.New)
		}
		e := entry.Entry{SessionID: s.ID, ProfileID: r.ProfileID, Notes: notes}
		e.ApplyDefaults()
		if _, err := deps.EntryStore.Create(ctx, e); err != nil {
			slog.Error("sync_regular_entry_failed", "session_id", s.ID, "profile_id", r.ProfileID, "error", err)
			continue
		}
		havePair[r.ProfileID] = true
		result.NewEntries++
	}

	slog.Info("sync_regulars_complete", "session_id", s.ID,
		"regulars", result.Regulars, "new_entries", result.NewEntries)
	return result, nil
}

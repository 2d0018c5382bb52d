package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	storage "hourlog/internal/adapters/storage/entry"
	"hourlog/internal/adapters/feed"
	"hourlog/internal/domain/consent"
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/fy"
	"hourlog/internal/domain/profile"
	"hourlog/internal/domain/session"
	"hourlog/internal/domain/tags"
)

// SyncProfileStore is the profile access the attendee reconciler needs.
type SyncProfileStore interface {
	List(ctx context.Context) ([]profile.Profile, error)
	Create(ctx context.Context, p profile.Profile) (int, error)
}

// SyncEntryStore is the entry access the attendee reconciler needs.
type SyncEntryStore interface {
	List(ctx context.Context) ([]entry.Entry, error)
	Create(ctx context.Context, e entry.Entry) (int, error)
	Update(ctx context.Context, id int, u storage.Update) error
}

// SyncRecordStore is the consent access the attendee reconciler needs.
type SyncRecordStore interface {
	List(ctx context.Context) ([]consent.Record, error)
	Upsert(ctx context.Context, r consent.Record) (int, error)
}

// SyncAttendeesDeps holds dependencies for the attendee reconciler.
type SyncAttendeesDeps struct {
	Feed         feed.Provider
	SessionStore SyncSessionStore
	ProfileStore SyncProfileStore
	EntryStore   SyncEntryStore
	RecordStore  SyncRecordStore

	// ConsentQuestions maps the feed's custom-question ids to consent record
	// types, e.g. "12345" -> "Photo Consent".
	ConsentQuestions map[string]string

	// Now is a test seam; zero means the wall clock.
	Now time.Time
}

// SyncAttendeesResult reports what one reconciliation run did.
type SyncAttendeesResult struct {
	SessionsProcessed int
	NewProfiles       int
	NewEntries        int
	RecordsWritten    int
	Skipped           int
}

// ExecuteSyncAttendees reconciles attendees for every synced session dated
// today or later. Past sessions are never re-synced so closed data stays
// untouched. Idempotent: the (profile, session) pair keys entry creation.
func ExecuteSyncAttendees(ctx context.Context, deps SyncAttendeesDeps) (SyncAttendeesResult, error) {
	now := deps.Now
	if now.IsZero() {
		now = time.Now()
	}

	sessions, err := deps.SessionStore.List(ctx)
	if err != nil {
		return SyncAttendeesResult{}, err
	}

	state, err := loadSyncState(ctx, deps)
	if err != nil {
		return SyncAttendeesResult{}, err
	}

	var result SyncAttendeesResult
	for _, s := range sessions {
		if !s.IsSynced() || !s.IsOnOrAfter(now) {
			continue
		}
		result.SessionsProcessed++
		if err := syncSessionAttendees(ctx, s, deps, state, &result, now); err != nil {
			// One session's feed failing must not abort the batch.
			slog.Error("sync_attendees_session_failed", "session_id", s.ID, "error", err)
		}
	}

	slog.Info("sync_attendees_complete",
		"sessions", result.SessionsProcessed, "new_profiles", result.NewProfiles,
		"new_entries", result.NewEntries, "records", result.RecordsWritten, "skipped", result.Skipped)
	return result, nil
}

// syncState is the in-memory view of local data the reconciler matches
// against, extended as the run creates profiles and entries so a duplicate in
// the same run cannot create duplicates locally.
type syncState struct {
	byMatchName map[string]profile.Profile
	byName      map[string]profile.Profile
	entryPairs  map[[2]int]bool // (profileID, sessionID)
	profileSess map[int]map[int]bool
}

func loadSyncState(ctx context.Context, deps SyncAttendeesDeps) (*syncState, error) {
	profiles, err := deps.ProfileStore.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := deps.EntryStore.List(ctx)
	if err != nil {
		return nil, err
	}

	state := &syncState{
		byMatchName: map[string]profile.Profile{},
		byName:      map[string]profile.Profile{},
		entryPairs:  map[[2]int]bool{},
		profileSess: map[int]map[int]bool{},
	}
	for _, p := range profiles {
		if key := p.MatchKey(); key != "" {
			state.byMatchName[key] = p
		}
		state.byName[profile.NormalizeName(p.Name)] = p
	}
	for _, e := range entries {
		state.entryPairs[[2]int{e.ProfileID, e.SessionID}] = true
		if state.profileSess[e.ProfileID] == nil {
			state.profileSess[e.ProfileID] = map[int]bool{}
		}
		state.profileSess[e.ProfileID][e.SessionID] = true
	}
	return state, nil
}

// matchProfile resolves an attendee to a profile: matchName first, display
// name second, create third. matchName survives display-name edits; the name
// fallback covers profiles that predate the matching field.
func (st *syncState) matchProfile(ctx context.Context, att feed.Attendee, deps SyncAttendeesDeps, result *SyncAttendeesResult) (profile.Profile, bool) {
	normalized := profile.NormalizeName(att.Name)
	if p, ok := st.byMatchName[normalized]; ok {
		return p, true
	}
	if p, ok := st.byName[normalized]; ok {
		return p, true
	}

	p := profile.Profile{Name: att.Name, Email: att.Email, MatchName: normalized}
	if err := p.Validate(); err != nil {
		slog.Warn("sync_attendee_skipped", "name", att.Name, "error", err)
		result.Skipped++
		return profile.Profile{}, false
	}
	id, err := deps.ProfileStore.Create(ctx, p)
	if err != nil {
		slog.Error("sync_profile_create_failed", "name", att.Name, "error", err)
		result.Skipped++
		return profile.Profile{}, false
	}
	p.ID = id
	st.byMatchName[normalized] = p
	st.byName[normalized] = p
	result.NewProfiles++
	return p, true
}

func syncSessionAttendees(ctx context.Context, s session.Session, deps SyncAttendeesDeps, state *syncState, result *SyncAttendeesResult, now time.Time) error {
	attendees, err := deps.Feed.ListEventAttendees(ctx, s.EventID)
	if err != nil {
		return err
	}

	for _, att := range attendees {
		if strings.TrimSpace(att.Name) == "" {
			slog.Warn("sync_attendee_skipped", "session_id", s.ID, "reason", "missing name")
			result.Skipped++
			continue
		}

		p, ok := state.matchProfile(ctx, att, deps, result)
		if !ok {
			continue
		}

		pair := [2]int{p.ID, s.ID}
		if !state.entryPairs[pair] {
			notes := ""
			// First-ever appearance: no entry for this profile in any other
			// session.
			if firstAppearance(state.profileSess[p.ID], s.ID) {
				notes = tags.Append(notes, tags.New)
			}
			if strings.Contains(strings.ToLower(att.TicketClassName), "child") {
				notes = tags.Append(notes, tags.Child)
			}

			e := entry.Entry{SessionID: s.ID, ProfileID: p.ID, Notes: notes}
			e.ApplyDefaults()
			if _, err := deps.EntryStore.Create(ctx, e); err != nil {
				slog.Error("sync_entry_create_failed", "session_id", s.ID, "profile_id", p.ID, "error", err)
				result.Skipped++
				continue
			}
			state.entryPairs[pair] = true
			if state.profileSess[p.ID] == nil {
				state.profileSess[p.ID] = map[int]bool{}
			}
			state.profileSess[p.ID][s.ID] = true
			result.NewEntries++
		}

		// Consent answers always overwrite: most recent sync wins.
		for _, ans := range att.Answers {
			recordType, ok := deps.ConsentQuestions[ans.QuestionID]
			if !ok {
				continue
			}
			r := consent.Record{
				ProfileID: p.ID,
				Type:      recordType,
				Status:    consent.StatusFromAnswer(ans.AnswerText),
				Date:      now.Format(fy.DateLayout),
			}
			if _, err := deps.RecordStore.Upsert(ctx, r); err != nil {
				slog.Error("sync_consent_failed", "profile_id", p.ID, "type", recordType, "error", err)
				continue
			}
			result.RecordsWritten++
		}
	}
	return nil
}

// firstAppearance reports whether the profile has no entry in any session
// other than the current one.
func firstAppearance(sessionsSeen map[int]bool, currentSessionID int) bool {
	for id := range sessionsSeen {
		if id != currentSessionID {
			return false
		}
	}
	return true
}

// RefreshSessionInput carries input for the single-session refresh.
type RefreshSessionInput struct {
	SessionID int
}

// ExecuteRefreshSession re-syncs one session's attendees regardless of date
// and then applies the derived photo-opt-out tagging: every non-group profile
// on the session without an accepted photo consent gets a no-photo tag on its
// entry. The tag is recomputable, never sourced from the feed.
func ExecuteRefreshSession(ctx context.Context, input RefreshSessionInput, deps SyncAttendeesDeps) (SyncAttendeesResult, error) {
	now := deps.Now
	if now.IsZero() {
		now = time.Now()
	}

	sessions, err := deps.SessionStore.List(ctx)
	if err != nil {
		return SyncAttendeesResult{}, err
	}
	var target *session.Session
	for i := range sessions {
		if sessions[i].ID == input.SessionID {
			target = &sessions[i]
			break
		}
	}
	if target == nil {
		return SyncAttendeesResult{}, faults.NotFoundf("session %d not found", input.SessionID)
	}
	if !target.IsSynced() {
		return SyncAttendeesResult{}, faults.Invalidf("session %d is not linked to an external event", input.SessionID)
	}

	state, err := loadSyncState(ctx, deps)
	if err != nil {
		return SyncAttendeesResult{}, err
	}

	result := SyncAttendeesResult{SessionsProcessed: 1}
	if err := syncSessionAttendees(ctx, *target, deps, state, &result, now); err != nil {
		return result, err
	}
	if err := tagPhotoOptOuts(ctx, *target, deps); err != nil {
		return result, err
	}
	return result, nil
}

// tagPhotoOptOuts appends the no-photo tag to entries of profiles lacking an
// accepted photo consent. Group profiles are exempt; they are not a person.
func tagPhotoOptOuts(ctx context.Context, s session.Session, deps SyncAttendeesDeps) error {
	profiles, err := deps.ProfileStore.List(ctx)
	if err != nil {
		return err
	}
	entries, err := deps.EntryStore.List(ctx)
	if err != nil {
		return err
	}
	records, err := deps.RecordStore.List(ctx)
	if err != nil {
		return err
	}

	isGroup := map[int]bool{}
	for _, p := range profiles {
		isGroup[p.ID] = p.IsGroup
	}
	photoOK := map[int]bool{}
	for _, r := range records {
		if r.IsAcceptedPhoto() {
			photoOK[r.ProfileID] = true
		}
	}

	for _, e := range entries {
		if e.SessionID != s.ID || isGroup[e.ProfileID] || photoOK[e.ProfileID] {
			continue
		}
		if tags.Has(e.Notes, tags.NoPhoto) {
			continue
		}
		notes := tags.Append(e.Notes, tags.NoPhoto)
		if err := deps.EntryStore.Update(ctx, e.ID, storage.Update{Notes: &notes}); err != nil {
			slog.Error("sync_nophoto_tag_failed", "entry_id", e.ID, "error", err)
		}
	}
	return nil
}

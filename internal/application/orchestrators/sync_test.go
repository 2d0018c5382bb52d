package orchestrators

import (
	"context"
	"testing"
	"time"

	entrystorage "hourlog/internal/adapters/storage/entry"
	"hourlog/internal/adapters/feed"
	"hourlog/internal/domain/consent"
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/group"
	"hourlog/internal/domain/profile"
	"hourlog/internal/domain/session"
	"hourlog/internal/domain/tags"
)

// In-memory stores for reconciler tests.

type memGroupStore struct{ groups []group.Group }

func (m *memGroupStore) List(_ context.Context) ([]group.Group, error) { return m.groups, nil }

type memSessionStore struct{ sessions []session.Session }

func (m *memSessionStore) List(_ context.Context) ([]session.Session, error) {
	return m.sessions, nil
}

func (m *memSessionStore) Create(_ context.Context, s session.Session) (int, error) {
	s.ID = len(m.sessions) + 1
	m.sessions = append(m.sessions, s)
	return s.ID, nil
}

type memProfileStore struct{ profiles []profile.Profile }

func (m *memProfileStore) List(_ context.Context) ([]profile.Profile, error) {
	return m.profiles, nil
}

func (m *memProfileStore) Create(_ context.Context, p profile.Profile) (int, error) {
	p.ID = len(m.profiles) + 1
	m.profiles = append(m.profiles, p)
	return p.ID, nil
}

type memEntryStore struct{ entries []entry.Entry }

func (m *memEntryStore) List(_ context.Context) ([]entry.Entry, error) { return m.entries, nil }

func (m *memEntryStore) Create(_ context.Context, e entry.Entry) (int, error) {
	e.ID = len(m.entries) + 1
	m.entries = append(m.entries, e)
	return e.ID, nil
}

func (m *memEntryStore) Update(_ context.Context, id int, u entrystorage.Update) error {
	for i := range m.entries {
		if m.entries[i].ID != id {
			continue
		}
		if u.Count != nil {
			m.entries[i].Count = *u.Count
		}
		if u.CheckedIn != nil {
			m.entries[i].CheckedIn = *u.CheckedIn
		}
		if u.Hours != nil {
			m.entries[i].Hours = *u.Hours
		}
		if u.Notes != nil {
			m.entries[i].Notes = *u.Notes
		}
		return nil
	}
	return nil
}

type memRecordStore struct{ records []consent.Record }

func (m *memRecordStore) List(_ context.Context) ([]consent.Record, error) { return m.records, nil }

func (m *memRecordStore) Upsert(_ context.Context, r consent.Record) (int, error) {
	for i := range m.records {
		if m.records[i].ProfileID == r.ProfileID && m.records[i].Type == r.Type {
			m.records[i].Status = r.Status
			m.records[i].Date = r.Date
			return m.records[i].ID, nil
		}
	}
	r.ID = len(m.records) + 1
	m.records = append(m.records, r)
	return r.ID, nil
}

type stubFeed struct {
	events    []feed.Event
	attendees map[string][]feed.Attendee
}

func (f *stubFeed) ListOrgEvents(_ context.Context) ([]feed.Event, error) { return f.events, nil }

func (f *stubFeed) ListEventAttendees(_ context.Context, eventID string) ([]feed.Attendee, error) {
	return f.attendees[eventID], nil
}

// TestSyncSessionsIsIdempotent verifies a second run against an unchanged
// feed creates nothing.
func TestSyncSessionsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	provider := &stubFeed{events: []feed.Event{
		{ID: "ev1", SeriesID: "series-a", Name: "Saturday Dig", StartDate: "2026-09-05T10:00:00Z"},
		{ID: "ev2", SeriesID: "unrelated", Name: "Other Org Event", StartDate: "2026-09-06T10:00:00Z"},
	}}
	deps := SyncSessionsDeps{
		Feed:         provider,
		GroupStore:   &memGroupStore{groups: []group.Group{{ID: 1, LookupKey: "sat", SeriesID: "series-a"}}},
		SessionStore: &memSessionStore{},
	}

	first, err := ExecuteSyncSessions(ctx, deps)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.TotalEvents != 2 || first.MatchedEvents != 1 || first.NewSessions != 1 {
		t.Fatalf("first run = %+v", first)
	}
	store := deps.SessionStore.(*memSessionStore)
	created := store.sessions[0]
	if created.Date != "2026-09-05" {
		t.Errorf("date = %q, want time discarded", created.Date)
	}
	if created.LookupKey != "2026-09-05 sat" {
		t.Errorf("lookup key = %q", created.LookupKey)
	}
	if created.EventID != "ev1" || created.GroupID != 1 {
		t.Errorf("created = %+v", created)
	}

	second, err := ExecuteSyncSessions(ctx, deps)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.NewSessions != 0 || second.MatchedEvents != 1 {
		t.Errorf("second run = %+v, want no new sessions", second)
	}
	if len(store.sessions) != 1 {
		t.Errorf("session count = %d after rerun, want 1", len(store.sessions))
	}
}

// TestSyncSessionsHandlesDuplicateFeedEvents verifies the same event listed
// twice in one feed response creates one session.
func TestSyncSessionsHandlesDuplicateFeedEvents(t *testing.T) {
	ev := feed.Event{ID: "ev1", SeriesID: "series-a", StartDate: "2026-09-05T10:00:00Z"}
	deps := SyncSessionsDeps{
		Feed:         &stubFeed{events: []feed.Event{ev, ev}},
		GroupStore:   &memGroupStore{groups: []group.Group{{ID: 1, LookupKey: "sat", SeriesID: "series-a"}}},
		SessionStore: &memSessionStore{},
	}
	result, err := ExecuteSyncSessions(context.Background(), deps)
	if err != nil {
		t.Fatalf("ExecuteSyncSessions: %v", err)
	}
	if result.NewSessions != 1 {
		t.Errorf("newSessions = %d, want 1", result.NewSessions)
	}
}

func attendeeDeps(provider *stubFeed, sessions *memSessionStore, profiles *memProfileStore, entries *memEntryStore, records *memRecordStore) SyncAttendeesDeps {
	return SyncAttendeesDeps{
		Feed:             provider,
		SessionStore:     sessions,
		ProfileStore:     profiles,
		EntryStore:       entries,
		RecordStore:      records,
		ConsentQuestions: map[string]string{"q-photo": consent.TypePhoto},
		Now:              time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

// TestSyncAttendeesIsIdempotent verifies the (profile, session) pair keys
// entry creation across reruns.
func TestSyncAttendeesIsIdempotent(t *testing.T) {
	ctx := context.Background()
	provider := &stubFeed{attendees: map[string][]feed.Attendee{
		"ev1": {
			{Name: "Alice Example", Email: "alice@example.org", TicketClassName: "Adult"},
			{Name: "Bobby Example", TicketClassName: "Child ticket"},
		},
	}}
	sessions := &memSessionStore{sessions: []session.Session{
		{ID: 1, Date: "2026-09-05", GroupID: 1, EventID: "ev1"},
	}}
	profiles := &memProfileStore{}
	entries := &memEntryStore{}
	records := &memRecordStore{}
	deps := attendeeDeps(provider, sessions, profiles, entries, records)

	first, err := ExecuteSyncAttendees(ctx, deps)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.NewProfiles != 2 || first.NewEntries != 2 {
		t.Fatalf("first run = %+v", first)
	}

	second, err := ExecuteSyncAttendees(ctx, deps)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.NewProfiles != 0 || second.NewEntries != 0 {
		t.Errorf("second run = %+v, want nothing new", second)
	}
	if len(profiles.profiles) != 2 || len(entries.entries) != 2 {
		t.Errorf("store counts after rerun: %d profiles, %d entries", len(profiles.profiles), len(entries.entries))
	}
}

// TestSyncAttendeesMatchNameWins verifies an attendee matching an existing
// profile's match name attaches there instead of creating a duplicate, even
// when the display name differs.
func TestSyncAttendeesMatchNameWins(t *testing.T) {
	provider := &stubFeed{attendees: map[string][]feed.Attendee{
		"ev1": {{Name: "ALICE EXAMPLE"}},
	}}
	sessions := &memSessionStore{sessions: []session.Session{
		{ID: 1, Date: "2026-09-05", EventID: "ev1"},
	}}
	profiles := &memProfileStore{profiles: []profile.Profile{
		{ID: 5, Name: "Alice B. Example (corrected)", MatchName: "alice example"},
	}}
	entries := &memEntryStore{}
	deps := attendeeDeps(provider, sessions, profiles, entries, &memRecordStore{})

	result, err := ExecuteSyncAttendees(context.Background(), deps)
	if err != nil {
		t.Fatalf("ExecuteSyncAttendees: %v", err)
	}
	if result.NewProfiles != 0 {
		t.Errorf("newProfiles = %d, want existing profile matched", result.NewProfiles)
	}
	if len(entries.entries) != 1 || entries.entries[0].ProfileID != 5 {
		t.Errorf("entries = %+v, want one entry on profile 5", entries.entries)
	}
}

// TestSyncAttendeesTagsAndConsent verifies first-appearance and child-ticket
// tagging plus the consent answer mapping.
func TestSyncAttendeesTagsAndConsent(t *testing.T) {
	provider := &stubFeed{attendees: map[string][]feed.Attendee{
		"ev1": {{
			Name:            "Bobby Example",
			TicketClassName: "CHILD (5-12)",
			Answers: []feed.Answer{
				{QuestionID: "q-photo", AnswerText: "accepted"},
				{QuestionID: "q-ignored", AnswerText: "whatever"},
			},
		}},
	}}
	sessions := &memSessionStore{sessions: []session.Session{
		{ID: 1, Date: "2026-09-05", EventID: "ev1"},
	}}
	entries := &memEntryStore{}
	records := &memRecordStore{}
	deps := attendeeDeps(provider, sessions, &memProfileStore{}, entries, records)

	result, err := ExecuteSyncAttendees(context.Background(), deps)
	if err != nil {
		t.Fatalf("ExecuteSyncAttendees: %v", err)
	}

	notes := entries.entries[0].Notes
	if !tags.Has(notes, tags.New) || !tags.Has(notes, tags.Child) {
		t.Errorf("notes = %q, want new and child tags", notes)
	}
	if result.RecordsWritten != 1 || len(records.records) != 1 {
		t.Fatalf("records = %+v", records.records)
	}
	r := records.records[0]
	if r.Type != consent.TypePhoto || r.Status != consent.StatusAccepted {
		t.Errorf("record = %+v", r)
	}
}

// TestSyncAttendeesConsentOverwrites verifies most-recent-sync-wins on the
// (profile, type) pair.
func TestSyncAttendeesConsentOverwrites(t *testing.T) {
	provider := &stubFeed{attendees: map[string][]feed.Attendee{
		"ev1": {{
			Name:    "Alice Example",
			Answers: []feed.Answer{{QuestionID: "q-photo", AnswerText: "declined this time"}},
		}},
	}}
	sessions := &memSessionStore{sessions: []session.Session{
		{ID: 1, Date: "2026-09-05", EventID: "ev1"},
	}}
	profiles := &memProfileStore{profiles: []profile.Profile{
		{ID: 5, Name: "Alice Example", MatchName: "alice example"},
	}}
	records := &memRecordStore{records: []consent.Record{
		{ID: 1, ProfileID: 5, Type: consent.TypePhoto, Status: consent.StatusAccepted, Date: "2025-01-01"},
	}}
	deps := attendeeDeps(provider, sessions, profiles, &memEntryStore{}, records)

	if _, err := ExecuteSyncAttendees(context.Background(), deps); err != nil {
		t.Fatalf("ExecuteSyncAttendees: %v", err)
	}
	if len(records.records) != 1 {
		t.Fatalf("record count = %d, want overwrite not append", len(records.records))
	}
	if records.records[0].Status != consent.StatusDeclined {
		t.Errorf("status = %q, want Declined (answer was not the accepted literal)", records.records[0].Status)
	}
}

// TestSyncAttendeesSkipsPastSessions verifies closed sessions stay untouched.
func TestSyncAttendeesSkipsPastSessions(t *testing.T) {
	provider := &stubFeed{attendees: map[string][]feed.Attendee{
		"ev1": {{Name: "Alice Example"}},
	}}
	sessions := &memSessionStore{sessions: []session.Session{
		{ID: 1, Date: "2020-01-01", EventID: "ev1"},
	}}
	entries := &memEntryStore{}
	deps := attendeeDeps(provider, sessions, &memProfileStore{}, entries, &memRecordStore{})

	result, err := ExecuteSyncAttendees(context.Background(), deps)
	if err != nil {
		t.Fatalf("ExecuteSyncAttendees: %v", err)
	}
	if result.SessionsProcessed != 0 || len(entries.entries) != 0 {
		t.Errorf("past session was synced: %+v", result)
	}
}

// TestRefreshSessionTagsPhotoOptOuts verifies the derived no-photo tag lands
// on entries of non-group profiles without accepted photo consent.
func TestRefreshSessionTagsPhotoOptOuts(t *testing.T) {
	provider := &stubFeed{attendees: map[string][]feed.Attendee{"ev1": {}}}
	sessions := &memSessionStore{sessions: []session.Session{
		{ID: 1, Date: "2020-01-01", EventID: "ev1"}, // past date: refresh still works
	}}
	profiles := &memProfileStore{profiles: []profile.Profile{
		{ID: 1, Name: "Alice Example", MatchName: "alice example"},
		{ID: 2, Name: "Consented Carol", MatchName: "consented carol"},
		{ID: 3, Name: "Scout Troop", MatchName: "scout troop", IsGroup: true},
	}}
	entries := &memEntryStore{entries: []entry.Entry{
		{ID: 1, SessionID: 1, ProfileID: 1, Count: 1},
		{ID: 2, SessionID: 1, ProfileID: 2, Count: 1},
		{ID: 3, SessionID: 1, ProfileID: 3, Count: 4},
	}}
	records := &memRecordStore{records: []consent.Record{
		{ID: 1, ProfileID: 2, Type: consent.TypePhoto, Status: consent.StatusAccepted},
	}}
	deps := attendeeDeps(provider, sessions, profiles, entries, records)

	if _, err := ExecuteRefreshSession(context.Background(), RefreshSessionInput{SessionID: 1}, deps); err != nil {
		t.Fatalf("ExecuteRefreshSession: %v", err)
	}

	if !tags.Has(entries.entries[0].Notes, tags.NoPhoto) {
		t.Error("profile without photo consent should be tagged")
	}
	if tags.Has(entries.entries[1].Notes, tags.NoPhoto) {
		t.Error("profile with accepted photo consent must not be tagged")
	}
	if tags.Has(entries.entries[2].Notes, tags.NoPhoto) {
		t.Error("group profiles are exempt from the photo tag")
	}

	// Re-running must not duplicate the tag.
	before := entries.entries[0].Notes
	if _, err := ExecuteRefreshSession(context.Background(), RefreshSessionInput{SessionID: 1}, deps); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if entries.entries[0].Notes != before {
		t.Errorf("notes changed on rerun: %q -> %q", before, entries.entries[0].Notes)
	}
}

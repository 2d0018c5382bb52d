package entry

import (
	"context"
	"fmt"

	"hourlog/internal/adapters/liststore"
	domain "hourlog/internal/domain/entry"
)

const collection = "Entries"

// ListStore implements Store against the remote list store. Entries carry
// both join columns and the notes column whose names differ between the two
// deployment targets.
type ListStore struct {
	client liststore.Client
	scheme liststore.NamingScheme
}

// NewListStore creates an entry store over the given client and scheme.
func NewListStore(client liststore.Client, scheme liststore.NamingScheme) *ListStore {
	return &ListStore{client: client, scheme: scheme}
}

func (s *ListStore) selectFields() []string {
	return []string{
		s.scheme.EntrySessionID,
		s.scheme.EntryProfileID,
		"Count",
		"CheckedIn",
		"Hours",
		s.scheme.EntryNotes,
	}
}

// List returns all structurally sound entries.
func (s *ListStore) List(ctx context.Context) ([]domain.Entry, error) {
	records, err := s.client.ListItems(ctx, collection, liststore.Query{Select: s.selectFields()})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	records = liststore.ValidateCollection(records, collection)
	entries := make([]domain.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, s.convert(r))
	}
	return entries, nil
}

// GetByID returns one entry.
func (s *ListStore) GetByID(ctx context.Context, id int) (domain.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return domain.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.Entry{}, fmt.Errorf("entry %d: %w", id, liststore.ErrNotFound)
}

// ListBySession returns the entries of one session.
func (s *ListStore) ListBySession(ctx context.Context, sessionID int) ([]domain.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Entry, 0)
	for _, e := range entries {
		if e.SessionID == sessionID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// ListByProfile returns the entries of one profile across all sessions.
func (s *ListStore) ListByProfile(ctx context.Context, profileID int) ([]domain.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Entry, 0)
	for _, e := range entries {
		if e.ProfileID == profileID {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Create persists a new entry and returns its id.
// PRE: e has been validated and defaults applied
func (s *ListStore) Create(ctx context.Context, e domain.Entry) (int, error) {
	fields := map[string]any{
		s.scheme.EntrySessionID: e.SessionID,
		s.scheme.EntryProfileID: e.ProfileID,
		"Count":                 e.Count,
		"CheckedIn":             e.CheckedIn,
		"Hours":                 e.Hours,
		s.scheme.EntryNotes:     e.Notes,
	}
	id, err := s.client.CreateItem(ctx, collection, fields)
	if err != nil {
		return 0, fmt.Errorf("create entry: %w", err)
	}
	return id, nil
}

// Update applies a partial edit. The join columns are immutable after
// creation; re-linking an entry is delete-and-recreate.
// PRE: u is not Empty
func (s *ListStore) Update(ctx context.Context, id int, u Update) error {
	fields := map[string]any{}
	if u.Count != nil {
		fields["Count"] = *u.Count
	}
	if u.CheckedIn != nil {
		fields["CheckedIn"] = *u.CheckedIn
	}
	if u.Hours != nil {
		fields["Hours"] = *u.Hours
	}
	if u.Notes != nil {
		fields[s.scheme.EntryNotes] = *u.Notes
	}
	if err := s.client.UpdateItem(ctx, collection, id, fields); err != nil {
		return fmt.Errorf("update entry %d: %w", id, err)
	}
	return nil
}

// Delete removes an entry.
func (s *ListStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, collection, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

func (s *ListStore) convert(r liststore.Record) domain.Entry {
	e := domain.Entry{
		ID:        r.ID,
		SessionID: r.LookupID(s.scheme.EntrySessionID),
		ProfileID: r.LookupID(s.scheme.EntryProfileID),
		Count:     r.Int("Count"),
		CheckedIn: r.Bool("CheckedIn"),
		Hours:     r.Float("Hours"),
		Notes:     r.Str(s.scheme.EntryNotes),
	}
	if e.Count < 1 {
		e.Count = domain.DefaultCount
	}
	return e
}

package session

import (
	"context"
	"fmt"

	"hourlog/internal/adapters/liststore"
	domain "hourlog/internal/domain/session"
)

const collection = "Sessions"

// ListStore implements Store against the remote list store. The group join
// column name differs between the two deployment targets, so the resolved
// naming scheme is injected here and nowhere else branches on it.
type ListStore struct {
	client liststore.Client
	scheme liststore.NamingScheme
}

// NewListStore creates a session store over the given client and scheme.
func NewListStore(client liststore.Client, scheme liststore.NamingScheme) *ListStore {
	return &ListStore{client: client, scheme: scheme}
}

func (s *ListStore) selectFields() []string {
	return []string{"Title", "Name", "Notes", "Date", s.scheme.SessionGroupID, "EventId"}
}

// List returns all structurally sound sessions.
func (s *ListStore) List(ctx context.Context) ([]domain.Session, error) {
	records, err := s.client.ListItems(ctx, collection, liststore.Query{Select: s.selectFields()})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	records = liststore.ValidateCollection(records, collection)
	sessions := make([]domain.Session, 0, len(records))
	for _, r := range records {
		sessions = append(sessions, s.convert(r))
	}
	return sessions, nil
}

// GetByID returns one session.
func (s *ListStore) GetByID(ctx context.Context, id int) (domain.Session, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	for _, sess := range sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return domain.Session{}, fmt.Errorf("session %d: %w", id, liststore.ErrNotFound)
}

// Create persists a new session and returns its id.
// PRE: sess has been validated
func (s *ListStore) Create(ctx context.Context, sess domain.Session) (int, error) {
	fields := map[string]any{
		"Title":   sess.LookupKey,
		"Name":    sess.Name,
		"Notes":   sess.Notes,
		"Date":    sess.Date,
		"EventId": sess.EventID,
	}
	if sess.GroupID > 0 {
		fields[s.scheme.SessionGroupID] = sess.GroupID
	}
	id, err := s.client.CreateItem(ctx, collection, fields)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Update applies a partial edit.
// PRE: u is not Empty
func (s *ListStore) Update(ctx context.Context, id int, u Update) error {
	fields := map[string]any{}
	if u.LookupKey != nil {
		fields["Title"] = *u.LookupKey
	}
	if u.Name != nil {
		fields["Name"] = *u.Name
	}
	if u.Notes != nil {
		fields["Notes"] = *u.Notes
	}
	if u.Date != nil {
		fields["Date"] = *u.Date
	}
	if u.GroupID != nil {
		fields[s.scheme.SessionGroupID] = *u.GroupID
	}
	if u.EventID != nil {
		fields["EventId"] = *u.EventID
	}
	if err := s.client.UpdateItem(ctx, collection, id, fields); err != nil {
		return fmt.Errorf("update session %d: %w", id, err)
	}
	return nil
}

// Delete removes a session. The entries-exist conflict rule lives in the
// orchestrator.
func (s *ListStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, collection, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}

func (s *ListStore) convert(r liststore.Record) domain.Session {
	return domain.Session{
		ID:        r.ID,
		LookupKey: r.Str("Title"),
		Name:      r.Str("Name"),
		Notes:     r.Str("Notes"),
		Date:      r.Date("Date"),
		GroupID:   r.LookupID(s.scheme.SessionGroupID),
		EventID:   r.Str("EventId"),
	}
}

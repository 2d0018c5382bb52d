package record

import (
	"context"
	"fmt"

	"hourlog/internal/adapters/liststore"
	domain "hourlog/internal/domain/consent"
)

const collection = "Records"

// ListStore implements Store against the remote list store.
type ListStore struct {
	client liststore.Client
	scheme liststore.NamingScheme
}

// NewListStore creates a consent-record store over the given client and scheme.
func NewListStore(client liststore.Client, scheme liststore.NamingScheme) *ListStore {
	return &ListStore{client: client, scheme: scheme}
}

func (s *ListStore) selectFields() []string {
	return []string{s.scheme.RecordProfileID, "RecordType", "Status", "Date"}
}

// List returns all structurally sound consent records.
func (s *ListStore) List(ctx context.Context) ([]domain.Record, error) {
	records, err := s.client.ListItems(ctx, collection, liststore.Query{Select: s.selectFields()})
	if err != nil {
		return nil, fmt.Errorf("list consent records: %w", err)
	}
	records = liststore.ValidateCollection(records, collection)
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		out = append(out, s.convert(r))
	}
	return out, nil
}

// ListByProfile returns one profile's consent records.
func (s *ListStore) ListByProfile(ctx context.Context, profileID int) ([]domain.Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Record, 0)
	for _, r := range records {
		if r.ProfileID == profileID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Upsert writes the latest state for (profileID, type): an existing record of
// the same pair is overwritten, otherwise a new one is created. No history is
// kept.
// PRE: r has been validated
// POST: Exactly one record exists for the pair; its id is returned
func (s *ListStore) Upsert(ctx context.Context, r domain.Record) (int, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range existing {
		if e.ProfileID == r.ProfileID && e.Type == r.Type {
			fields := map[string]any{"Status": r.Status, "Date": r.Date}
			if err := s.client.UpdateItem(ctx, collection, e.ID, fields); err != nil {
				return 0, fmt.Errorf("update consent record %d: %w", e.ID, err)
			}
			return e.ID, nil
		}
	}
	fields := map[string]any{
		s.scheme.RecordProfileID: r.ProfileID,
		"RecordType":             r.Type,
		"Status":                 r.Status,
		"Date":                   r.Date,
	}
	id, err := s.client.CreateItem(ctx, collection, fields)
	if err != nil {
		return 0, fmt.Errorf("create consent record: %w", err)
	}
	return id, nil
}

// Delete removes a consent record.
func (s *ListStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, collection, id); err != nil {
		return fmt.Errorf("delete consent record %d: %w", id, err)
	}
	return nil
}

// TypeChoices returns the store's configured record types, falling back to
// the built-in set when the store cannot enumerate them.
func (s *ListStore) TypeChoices(ctx context.Context) ([]string, error) {
	choices, err := s.client.ListChoiceValues(ctx, collection, "RecordType")
	if err != nil || len(choices) == 0 {
		return domain.BuiltinTypes, nil
	}
	return choices, nil
}

// StatusChoices returns the store's configured statuses, with the same
// fallback as TypeChoices.
func (s *ListStore) StatusChoices(ctx context.Context) ([]string, error) {
	choices, err := s.client.ListChoiceValues(ctx, collection, "Status")
	if err != nil || len(choices) == 0 {
		return domain.BuiltinStatuses, nil
	}
	return choices, nil
}

func (s *ListStore) convert(r liststore.Record) domain.Record {
	return domain.Record{
		ID:        r.ID,
		ProfileID: r.LookupID(s.scheme.RecordProfileID),
		Type:      r.Str("RecordType"),
		Status:    r.Str("Status"),
		Date:      r.Date("Date"),
	}
}

package regular

import (
	"context"
	"fmt"

	"hourlog/internal/adapters/liststore"
	domain "hourlog/internal/domain/regular"
)

const collection = "Regulars"

// ListStore implements Store against the remote list store.
type ListStore struct {
	client liststore.Client
	scheme liststore.NamingScheme
}

// NewListStore creates a regulars store over the given client and scheme.
func NewListStore(client liststore.Client, scheme liststore.NamingScheme) *ListStore {
	return &ListStore{client: client, scheme: scheme}
}

// List returns all structurally sound regulars.
func (s *ListStore) List(ctx context.Context) ([]domain.Regular, error) {
	q := liststore.Query{Select: []string{s.scheme.RegularProfileID, s.scheme.RegularGroupID}}
	records, err := s.client.ListItems(ctx, collection, q)
	if err != nil {
		return nil, fmt.Errorf("list regulars: %w", err)
	}
	records = liststore.ValidateCollection(records, collection)
	regulars := make([]domain.Regular, 0, len(records))
	for _, r := range records {
		regulars = append(regulars, domain.Regular{
			ID:        r.ID,
			ProfileID: r.LookupID(s.scheme.RegularProfileID),
			GroupID:   r.LookupID(s.scheme.RegularGroupID),
		})
	}
	return regulars, nil
}

// ListByGroup returns the regulars of one group.
func (s *ListStore) ListByGroup(ctx context.Context, groupID int) ([]domain.Regular, error) {
	regulars, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]domain.Regular, 0)
	for _, r := range regulars {
		if r.GroupID == groupID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Create persists a new regular marker and returns its id.
// PRE: r has been validated
func (s *ListStore) Create(ctx context.Context, r domain.Regular) (int, error) {
	fields := map[string]any{
		s.scheme.RegularProfileID: r.ProfileID,
		s.scheme.RegularGroupID:   r.GroupID,
	}
	id, err := s.client.CreateItem(ctx, collection, fields)
	if err != nil {
		return 0, fmt.Errorf("create regular: %w", err)
	}
	return id, nil
}

// Delete removes a regular marker.
func (s *ListStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, collection, id); err != nil {
		return fmt.Errorf("delete regular %d: %w", id, err)
	}
	return nil
}

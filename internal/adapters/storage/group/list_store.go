package group

import (
	"context"
	"fmt"
	"strings"

	"hourlog/internal/adapters/liststore"
	domain "hourlog/internal/domain/group"
)

const collection = "Groups"

var selectFields = []string{"Title", "Name", "Description", "EventSeriesId"}

// ListStore implements Store against the remote list store. The Title column
// holds the short internal lookup key; the Name column holds the display
// name. The two must never be swapped, every session join targets Title.
type ListStore struct {
	client liststore.Client
}

// NewListStore creates a group store over the given client.
func NewListStore(client liststore.Client) *ListStore {
	return &ListStore{client: client}
}

// List returns all structurally sound groups.
func (s *ListStore) List(ctx context.Context) ([]domain.Group, error) {
	records, err := s.client.ListItems(ctx, collection, liststore.Query{Select: selectFields})
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	records = liststore.ValidateCollection(records, collection)
	groups := make([]domain.Group, 0, len(records))
	for _, r := range records {
		groups = append(groups, convert(r))
	}
	return groups, nil
}

// GetByID returns one group.
// POST: Returns liststore.ErrNotFound (wrapped) when no group has the id
func (s *ListStore) GetByID(ctx context.Context, id int) (domain.Group, error) {
	groups, err := s.List(ctx)
	if err != nil {
		return domain.Group{}, err
	}
	for _, g := range groups {
		if g.ID == id {
			return g, nil
		}
	}
	return domain.Group{}, fmt.Errorf("group %d: %w", id, liststore.ErrNotFound)
}

// GetByLookupKey returns the group with the given key, case-insensitive.
func (s *ListStore) GetByLookupKey(ctx context.Context, key string) (domain.Group, error) {
	groups, err := s.List(ctx)
	if err != nil {
		return domain.Group{}, err
	}
	for _, g := range groups {
		if g.KeyEquals(key) {
			return g, nil
		}
	}
	return domain.Group{}, fmt.Errorf("group %q: %w", key, liststore.ErrNotFound)
}

// Create persists a new group and returns its id.
// PRE: g has been validated
func (s *ListStore) Create(ctx context.Context, g domain.Group) (int, error) {
	fields := map[string]any{
		"Title":         g.LookupKey,
		"Name":          g.Name,
		"Description":   g.Description,
		"EventSeriesId": g.SeriesID,
	}
	id, err := s.client.CreateItem(ctx, collection, fields)
	if err != nil {
		return 0, fmt.Errorf("create group: %w", err)
	}
	return id, nil
}

// Update applies a partial edit.
// PRE: u is not Empty
func (s *ListStore) Update(ctx context.Context, id int, u Update) error {
	fields := map[string]any{}
	if u.LookupKey != nil {
		fields["Title"] = strings.TrimSpace(*u.LookupKey)
	}
	if u.Name != nil {
		fields["Name"] = *u.Name
	}
	if u.Description != nil {
		fields["Description"] = *u.Description
	}
	if u.SeriesID != nil {
		fields["EventSeriesId"] = *u.SeriesID
	}
	if err := s.client.UpdateItem(ctx, collection, id, fields); err != nil {
		return fmt.Errorf("update group %d: %w", id, err)
	}
	return nil
}

// Delete removes a group. Referential rules (no delete while sessions point
// at it) are enforced by the orchestrator, not here.
func (s *ListStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, collection, id); err != nil {
		return fmt.Errorf("delete group %d: %w", id, err)
	}
	return nil
}

func convert(r liststore.Record) domain.Group {
	return domain.Group{
		ID:          r.ID,
		LookupKey:   r.Str("Title"),
		Name:        r.Str("Name"),
		Description: r.Str("Description"),
		SeriesID:    r.Str("EventSeriesId"),
	}
}

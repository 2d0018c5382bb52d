package profile

import (
	"context"
	"fmt"

	"hourlog/internal/adapters/liststore"
	domain "hourlog/internal/domain/profile"
)

const collection = "Profiles"

var selectFields = []string{"Title", "Email", "MatchName", "IsGroup", "Username"}

// ListStore implements Store against the remote list store. Profiles keep
// their display name in Title.
type ListStore struct {
	client liststore.Client
}

// NewListStore creates a profile store over the given client.
func NewListStore(client liststore.Client) *ListStore {
	return &ListStore{client: client}
}

// List returns all structurally sound profiles.
func (s *ListStore) List(ctx context.Context) ([]domain.Profile, error) {
	records, err := s.client.ListItems(ctx, collection, liststore.Query{Select: selectFields})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	records = liststore.ValidateCollection(records, collection)
	profiles := make([]domain.Profile, 0, len(records))
	for _, r := range records {
		profiles = append(profiles, convert(r))
	}
	return profiles, nil
}

// GetByID returns one profile.
func (s *ListStore) GetByID(ctx context.Context, id int) (domain.Profile, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Profile{}, fmt.Errorf("profile %d: %w", id, liststore.ErrNotFound)
}

// GetBySlug returns the first profile whose derived slug matches. Slugs are
// not unique; collisions resolve to whichever profile the store lists first.
func (s *ListStore) GetBySlug(ctx context.Context, slug string) (domain.Profile, error) {
	profiles, err := s.List(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	for _, p := range profiles {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return domain.Profile{}, fmt.Errorf("profile %q: %w", slug, liststore.ErrNotFound)
}

// Create persists a new profile and returns its id.
// PRE: p has been validated
func (s *ListStore) Create(ctx context.Context, p domain.Profile) (int, error) {
	fields := map[string]any{
		"Title":     p.Name,
		"Email":     p.Email,
		"MatchName": p.MatchName,
		"IsGroup":   p.IsGroup,
		"Username":  p.Username,
	}
	id, err := s.client.CreateItem(ctx, collection, fields)
	if err != nil {
		return 0, fmt.Errorf("create profile: %w", err)
	}
	return id, nil
}

// Update applies a partial edit.
// PRE: u is not Empty
func (s *ListStore) Update(ctx context.Context, id int, u Update) error {
	fields := map[string]any{}
	if u.Name != nil {
		fields["Title"] = *u.Name
	}
	if u.Email != nil {
		fields["Email"] = *u.Email
	}
	if u.MatchName != nil {
		fields["MatchName"] = *u.MatchName
	}
	if u.IsGroup != nil {
		fields["IsGroup"] = *u.IsGroup
	}
	if u.Username != nil {
		fields["Username"] = *u.Username
	}
	if err := s.client.UpdateItem(ctx, collection, id, fields); err != nil {
		return fmt.Errorf("update profile %d: %w", id, err)
	}
	return nil
}

// Delete removes a profile. The entries-exist conflict rule lives in the
// orchestrator.
func (s *ListStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, collection, id); err != nil {
		return fmt.Errorf("delete profile %d: %w", id, err)
	}
	return nil
}

func convert(r liststore.Record) domain.Profile {
	return domain.Profile{
		ID:        r.ID,
		Name:      r.Str("Title"),
		Email:     r.Str("Email"),
		MatchName: r.Str("MatchName"),
		IsGroup:   r.Bool("IsGroup"),
		Username:  r.Str("Username"),
	}
}

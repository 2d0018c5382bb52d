package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"hourlog/internal/adapters/liststore"
	storage "hourlog/internal/adapters/storage/group"
	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/group"
	"hourlog/internal/domain/session"
)

// GroupStore defines the group persistence interface for group CRUD.
type GroupStore interface {
	List(ctx context.Context) ([]group.Group, error)
	GetByID(ctx context.Context, id int) (group.Group, error)
	GetByLookupKey(ctx context.Context, key string) (group.Group, error)
	Create(ctx context.Context, g group.Group) (int, error)
	Update(ctx context.Context, id int, u storage.Update) error
	Delete(ctx context.Context, id int) error
}

// GroupSessionStore is the session read needed for the delete conflict rule.
type GroupSessionStore interface {
	List(ctx context.Context) ([]session.Session, error)
}

// CreateGroupInput carries input for group creation.
type CreateGroupInput struct {
	LookupKey   string
	Name        string
	Description string
	SeriesID    string
}

// CreateGroupDeps holds dependencies for ExecuteCreateGroup.
type CreateGroupDeps struct {
	GroupStore GroupStore
}

// ExecuteCreateGroup creates a group after checking key uniqueness.
// PRE: input.LookupKey identifies the group in URLs and session joins
// POST: Group exists with a store-assigned id, or a classified error
func ExecuteCreateGroup(ctx context.Context, input CreateGroupInput, deps CreateGroupDeps) (int, error) {
	g := group.Group{
		LookupKey:   input.LookupKey,
		Name:        input.Name,
		Description: input.Description,
		SeriesID:    input.SeriesID,
	}
	if err := g.Validate(); err != nil {
		return 0, faults.Invalidf("%s", err)
	}

	existing, err := deps.GroupStore.GetByLookupKey(ctx, g.LookupKey)
	if err == nil && existing.ID > 0 {
		return 0, faults.Conflictf("group key %q already exists", g.LookupKey)
	}
	if err != nil && !errors.Is(err, liststore.ErrNotFound) {
		return 0, err
	}

	id, err := deps.GroupStore.Create(ctx, g)
	if err != nil {
		return 0, err
	}
	slog.Info("group_created", "id", id, "key", g.LookupKey)
	return id, nil
}

// UpdateGroupInput carries a partial group edit.
type UpdateGroupInput struct {
	ID     int
	Fields storage.Update
}

// ExecuteUpdateGroup applies a partial edit, re-checking key uniqueness when
// the key changes. Either at least one recognized field changes or the
// request is rejected before any write.
func ExecuteUpdateGroup(ctx context.Context, input UpdateGroupInput, deps CreateGroupDeps) error {
	if input.Fields.Empty() {
		return faults.Invalidf("no recognized fields to update")
	}
	current, err := deps.GroupStore.GetByID(ctx, input.ID)
	if err != nil {
		return faults.NotFoundf("group %d not found", input.ID)
	}

	if input.Fields.LookupKey != nil && !current.KeyEquals(*input.Fields.LookupKey) {
		probe := group.Group{LookupKey: *input.Fields.LookupKey}
		if err := probe.Validate(); err != nil {
			return faults.Invalidf("%s", err)
		}
		existing, err := deps.GroupStore.GetByLookupKey(ctx, *input.Fields.LookupKey)
		if err == nil && existing.ID != input.ID {
			return faults.Conflictf("group key %q already exists", *input.Fields.LookupKey)
		}
		if err != nil && !errors.Is(err, liststore.ErrNotFound) {
			return err
		}
	}

	return deps.GroupStore.Update(ctx, input.ID, input.Fields)
}

// DeleteGroupDeps holds dependencies for ExecuteDeleteGroup.
type DeleteGroupDeps struct {
	GroupStore   GroupStore
	SessionStore GroupSessionStore
}

// ExecuteDeleteGroup removes a group unless sessions still reference it.
// Deletes never cascade.
func ExecuteDeleteGroup(ctx context.Context, id int, deps DeleteGroupDeps) error {
	if _, err := deps.GroupStore.GetByID(ctx, id); err != nil {
		return faults.NotFoundf("group %d not found", id)
	}
	sessions, err := deps.SessionStore.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if s.GroupID == id {
			return faults.Conflictf("group %d still has sessions; delete them first", id)
		}
	}
	if err := deps.GroupStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("group_deleted", "id", id)
	return nil
}

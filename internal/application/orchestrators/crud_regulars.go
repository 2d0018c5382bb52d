package orchestrators

import (
	"context"
	"log/slog"

	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/regular"
)

// FullRegularStore defines the regular persistence interface for regular CRUD.
type FullRegularStore interface {
	List(ctx context.Context) ([]regular.Regular, error)
	Create(ctx context.Context, r regular.Regular) (int, error)
	Delete(ctx context.Context, id int) error
}

// CreateRegularInput carries input for marking a profile as a group regular.
type CreateRegularInput struct {
	ProfileID int
	GroupID   int
}

// CreateRegularDeps holds dependencies for ExecuteCreateRegular.
type CreateRegularDeps struct {
	RegularStore FullRegularStore
	ProfileStore ProfileStore
	GroupStore   GroupStore
}

// ExecuteCreateRegular marks a profile as expected at every session of a
// group. The (profile, group) pair is unique; marking twice is a conflict.
func ExecuteCreateRegular(ctx context.Context, input CreateRegularInput, deps CreateRegularDeps) (int, error) {
	reg := regular.Regular{ProfileID: input.ProfileID, GroupID: input.GroupID}
	if err := reg.Validate(); err != nil {
		return 0, faults.Invalidf("%s", err)
	}
	if _, err := deps.ProfileStore.GetByID(ctx, reg.ProfileID); err != nil {
		return 0, faults.NotFoundf("profile %d not found", reg.ProfileID)
	}
	if _, err := deps.GroupStore.GetByID(ctx, reg.GroupID); err != nil {
		return 0, faults.NotFoundf("group %d not found", reg.GroupID)
	}

	existing, err := deps.RegularStore.List(ctx)
	if err != nil {
		return 0, err
	}
	for _, r := range existing {
		if r.ProfileID == reg.ProfileID && r.GroupID == reg.GroupID {
			return 0, faults.Conflictf("profile %d is already a regular of group %d", reg.ProfileID, reg.GroupID)
		}
	}

	id, err := deps.RegularStore.Create(ctx, reg)
	if err != nil {
		return 0, err
	}
	slog.Info("regular_created", "id", id, "profile_id", reg.ProfileID, "group_id", reg.GroupID)
	return id, nil
}

// ExecuteDeleteRegular removes a regular marker. Existing entries created
// from it are untouched.
func ExecuteDeleteRegular(ctx context.Context, id int, deps CreateRegularDeps) error {
	existing, err := deps.RegularStore.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, r := range existing {
		if r.ID == id {
			found = true
			break
		}
	}
	if !found {
		return faults.NotFoundf("regular %d not found", id)
	}
	if err := deps.RegularStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("regular_deleted", "id", id)
	return nil
}

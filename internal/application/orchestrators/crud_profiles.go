package orchestrators

import (
	"context"
	"log/slog"

	storage "hourlog/internal/adapters/storage/profile"
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/profile"
)

// ProfileStore defines the profile persistence interface for profile CRUD.
type ProfileStore interface {
	List(ctx context.Context) ([]profile.Profile, error)
	GetByID(ctx context.Context, id int) (profile.Profile, error)
	Create(ctx context.Context, p profile.Profile) (int, error)
	Update(ctx context.Context, id int, u storage.Update) error
	Delete(ctx context.Context, id int) error
}

// ProfileEntryStore is the entry read needed for the delete conflict rule.
type ProfileEntryStore interface {
	ListByProfile(ctx context.Context, profileID int) ([]entry.Entry, error)
}

// CreateProfileInput carries input for profile creation.
type CreateProfileInput struct {
	Name     string
	Email    string
	IsGroup  bool
	Username string
}

// CreateProfileDeps holds dependencies for ExecuteCreateProfile.
type CreateProfileDeps struct {
	ProfileStore ProfileStore
}

// ExecuteCreateProfile creates a profile. The match name defaults to the
// normalized display name so external-feed matching works immediately and
// survives later display-name corrections.
func ExecuteCreateProfile(ctx context.Context, input CreateProfileInput, deps CreateProfileDeps) (int, error) {
	p := profile.Profile{
		Name:      input.Name,
		Email:     input.Email,
		MatchName: profile.NormalizeName(input.Name),
		IsGroup:   input.IsGroup,
		Username:  input.Username,
	}
	if err := p.Validate(); err != nil {
		return 0, faults.Invalidf("%s", err)
	}

	id, err := deps.ProfileStore.Create(ctx, p)
	if err != nil {
		return 0, err
	}
	slog.Info("profile_created", "id", id, "name", p.Name)
	return id, nil
}

// UpdateProfileInput carries a partial profile edit.
type UpdateProfileInput struct {
	ID     int
	Fields storage.Update
}

// ExecuteUpdateProfile applies a partial edit. Editing the display name does
// not touch the match name; the two diverge deliberately.
func ExecuteUpdateProfile(ctx context.Context, input UpdateProfileInput, deps CreateProfileDeps) error {
	if input.Fields.Empty() {
		return faults.Invalidf("no recognized fields to update")
	}
	if _, err := deps.ProfileStore.GetByID(ctx, input.ID); err != nil {
		return faults.NotFoundf("profile %d not found", input.ID)
	}
	if input.Fields.Name != nil {
		probe := profile.Profile{Name: *input.Fields.Name}
		if err := probe.Validate(); err != nil {
			return faults.Invalidf("%s", err)
		}
	}
	if input.Fields.Email != nil && *input.Fields.Email != "" {
		probe := profile.Profile{Name: "probe", Email: *input.Fields.Email}
		if err := probe.Validate(); err != nil {
			return faults.Invalidf("%s", err)
		}
	}
	return deps.ProfileStore.Update(ctx, input.ID, input.Fields)
}

// DeleteProfileDeps holds dependencies for ExecuteDeleteProfile.
type DeleteProfileDeps struct {
	ProfileStore ProfileStore
	EntryStore   ProfileEntryStore
}

// ExecuteDeleteProfile removes a profile unless entries still reference it.
func ExecuteDeleteProfile(ctx context.Context, id int, deps DeleteProfileDeps) error {
	if _, err := deps.ProfileStore.GetByID(ctx, id); err != nil {
		return faults.NotFoundf("profile %d not found", id)
	}
	entries, err := deps.EntryStore.ListByProfile(ctx, id)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return faults.Conflictf("profile %d still has %d entries; delete them first", id, len(entries))
	}
	if err := deps.ProfileStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("profile_deleted", "id", id)
	return nil
}

package orchestrators

import (
	"context"
	"log/slog"

	storage "hourlog/internal/adapters/storage/entry"
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/faults"
)

// EntryStore defines the entry persistence interface for entry CRUD.
type EntryStore interface {
	GetByID(ctx context.Context, id int) (entry.Entry, error)
	ListBySession(ctx context.Context, sessionID int) ([]entry.Entry, error)
	Create(ctx context.Context, e entry.Entry) (int, error)
	Update(ctx context.Context, id int, u storage.Update) error
	Delete(ctx context.Context, id int) error
}

// CreateEntryInput carries input for entry creation. An entry is both a
// registration and an attendance record; CheckedIn flips its meaning.
type CreateEntryInput struct {
	SessionID int
	ProfileID int
	Count     int
	Hours     float64
	Notes     string
}

// CreateEntryDeps holds dependencies for ExecuteCreateEntry.
type CreateEntryDeps struct {
	EntryStore   EntryStore
	SessionStore SessionStore
	ProfileStore ProfileStore
}

// ExecuteCreateEntry creates an entry after verifying both ends of the join.
func ExecuteCreateEntry(ctx context.Context, input CreateEntryInput, deps CreateEntryDeps) (int, error) {
	e := entry.Entry{
		SessionID: input.SessionID,
		ProfileID: input.ProfileID,
		Count:     input.Count,
		Hours:     input.Hours,
		Notes:     input.Notes,
	}
	e.ApplyDefaults()
	if err := e.Validate(); err != nil {
		return 0, faults.Invalidf("%s", err)
	}
	if _, err := deps.SessionStore.GetByID(ctx, e.SessionID); err != nil {
		return 0, faults.NotFoundf("session %d not found", e.SessionID)
	}
	if _, err := deps.ProfileStore.GetByID(ctx, e.ProfileID); err != nil {
		return 0, faults.NotFoundf("profile %d not found", e.ProfileID)
	}

	id, err := deps.EntryStore.Create(ctx, e)
	if err != nil {
		return 0, err
	}
	slog.Info("entry_created", "id", id, "session_id", e.SessionID, "profile_id", e.ProfileID)
	return id, nil
}

// UpdateEntryInput carries a partial entry edit.
type UpdateEntryInput struct {
	ID     int
	Fields storage.Update
}

// UpdateEntryDeps holds dependencies for entry updates.
type UpdateEntryDeps struct {
	EntryStore EntryStore
}

// ExecuteUpdateEntry applies a partial edit.
func ExecuteUpdateEntry(ctx context.Context, input UpdateEntryInput, deps UpdateEntryDeps) error {
	if input.Fields.Empty() {
		return faults.Invalidf("no recognized fields to update")
	}
	if _, err := deps.EntryStore.GetByID(ctx, input.ID); err != nil {
		return faults.NotFoundf("entry %d not found", input.ID)
	}
	if input.Fields.Hours != nil && *input.Fields.Hours < 0 {
		return faults.Invalidf("hours cannot be negative")
	}
	if input.Fields.Count != nil && *input.Fields.Count < 1 {
		return faults.Invalidf("count must be at least 1")
	}
	return deps.EntryStore.Update(ctx, input.ID, input.Fields)
}

// ExecuteToggleCheckIn flips an entry between registered and attended.
// POST: Returns the new checked-in state
func ExecuteToggleCheckIn(ctx context.Context, entryID int, deps UpdateEntryDeps) (bool, error) {
	e, err := deps.EntryStore.GetByID(ctx, entryID)
	if err != nil {
		return false, faults.NotFoundf("entry %d not found", entryID)
	}
	next := !e.CheckedIn
	if err := deps.EntryStore.Update(ctx, entryID, storage.Update{CheckedIn: &next}); err != nil {
		return false, err
	}
	slog.Info("entry_checkin_toggled", "id", entryID, "checked_in", next)
	return next, nil
}

// SetSessionHoursInput carries input for the bulk hours operation.
type SetSessionHoursInput struct {
	SessionID int
	Hours     float64
}

// SetSessionHoursResult reports how many entries were touched.
type SetSessionHoursResult struct {
	Updated int
	Skipped int
}

// ExecuteSetSessionHours writes the same hour value onto every checked-in
// entry of a session. Entries not checked in are skipped, never zeroed.
func ExecuteSetSessionHours(ctx context.Context, input SetSessionHoursInput, deps UpdateEntryDeps) (SetSessionHoursResult, error) {
	if input.Hours < 0 {
		return SetSessionHoursResult{}, faults.Invalidf("hours cannot be negative")
	}
	entries, err := deps.EntryStore.ListBySession(ctx, input.SessionID)
	if err != nil {
		return SetSessionHoursResult{}, err
	}

	var result SetSessionHoursResult
	for _, e := range entries {
		if !e.CheckedIn {
			result.Skipped++
			continue
		}
		if err := deps.EntryStore.Update(ctx, e.ID, storage.Update{Hours: &input.Hours}); err != nil {
			return result, err
		}
		result.Updated++
	}
	slog.Info("session_hours_set", "session_id", input.SessionID, "hours", input.Hours,
		"updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}

// ExecuteDeleteEntry removes an entry.
func ExecuteDeleteEntry(ctx context.Context, id int, deps UpdateEntryDeps) error {
	if _, err := deps.EntryStore.GetByID(ctx, id); err != nil {
		return faults.NotFoundf("entry %d not found", id)
	}
	if err := deps.EntryStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("entry_deleted", "id", id)
	return nil
}

package orchestrators

import (
	"context"
	"log/slog"

	storage "hourlog/internal/adapters/storage/session"
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/session"
)

// SessionStore defines the session persistence interface for session CRUD.
type SessionStore interface {
	GetByID(ctx context.Context, id int) (session.Session, error)
	Create(ctx context.Context, s session.Session) (int, error)
	Update(ctx context.Context, id int, u storage.Update) error
	Delete(ctx context.Context, id int) error
}

// SessionEntryStore is the entry read needed for the delete conflict rule.
type SessionEntryStore interface {
	ListBySession(ctx context.Context, sessionID int) ([]entry.Entry, error)
}

// CreateSessionInput carries input for session creation.
type CreateSessionInput struct {
	LookupKey string
	Name      string
	Notes     string
	Date      string
	GroupID   int
}

// CreateSessionDeps holds dependencies for ExecuteCreateSession.
type CreateSessionDeps struct {
	SessionStore SessionStore
	GroupStore   GroupStore // verifies the referenced group exists
}

// ExecuteCreateSession creates a session. Date is the only required field.
func ExecuteCreateSession(ctx context.Context, input CreateSessionInput, deps CreateSessionDeps) (int, error) {
	s := session.Session{
		LookupKey: input.LookupKey,
		Name:      input.Name,
		Notes:     input.Notes,
		Date:      input.Date,
		GroupID:   input.GroupID,
	}
	if err := s.Validate(); err != nil {
		return 0, faults.Invalidf("%s", err)
	}
	if s.LookupKey == "" {
		s.LookupKey = s.Date
	}
	if s.GroupID > 0 {
		if _, err := deps.GroupStore.GetByID(ctx, s.GroupID); err != nil {
			return 0, faults.NotFoundf("group %d not found", s.GroupID)
		}
	}

	id, err := deps.SessionStore.Create(ctx, s)
	if err != nil {
		return 0, err
	}
	slog.Info("session_created", "id", id, "date", s.Date, "group_id", s.GroupID)
	return id, nil
}

// UpdateSessionInput carries a partial session edit.
type UpdateSessionInput struct {
	ID     int
	Fields storage.Update
}

// UpdateSessionDeps holds dependencies for ExecuteUpdateSession.
type UpdateSessionDeps struct {
	SessionStore SessionStore
	GroupStore   GroupStore
}

// ExecuteUpdateSession applies a partial edit. A request with no recognized
// fields is rejected before any write.
func ExecuteUpdateSession(ctx context.Context, input UpdateSessionInput, deps UpdateSessionDeps) error {
	if input.Fields.Empty() {
		return faults.Invalidf("no recognized fields to update")
	}
	if _, err := deps.SessionStore.GetByID(ctx, input.ID); err != nil {
		return faults.NotFoundf("session %d not found", input.ID)
	}
	if input.Fields.Date != nil {
		probe := session.Session{Date: *input.Fields.Date}
		if err := probe.Validate(); err != nil {
			return faults.Invalidf("%s", err)
		}
	}
	if input.Fields.GroupID != nil && *input.Fields.GroupID > 0 {
		if _, err := deps.GroupStore.GetByID(ctx, *input.Fields.GroupID); err != nil {
			return faults.NotFoundf("group %d not found", *input.Fields.GroupID)
		}
	}
	return deps.SessionStore.Update(ctx, input.ID, input.Fields)
}

// DeleteSessionDeps holds dependencies for ExecuteDeleteSession.
type DeleteSessionDeps struct {
	SessionStore SessionStore
	EntryStore   SessionEntryStore
}

// ExecuteDeleteSession removes a session unless entries still reference it.
func ExecuteDeleteSession(ctx context.Context, id int, deps DeleteSessionDeps) error {
	if _, err := deps.SessionStore.GetByID(ctx, id); err != nil {
		return faults.NotFoundf("session %d not found", id)
	}
	entries, err := deps.EntryStore.ListBySession(ctx, id)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return faults.Conflictf("session %d still has %d entries; delete them first", id, len(entries))
	}
	if err := deps.SessionStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("session_deleted", "id", id)
	return nil
}

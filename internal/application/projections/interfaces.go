package projections

import (
	"context"

	"hourlog/internal/domain/consent"
	"hourlog/internal/domain/entry"
	"hourlog/internal/domain/group"
	"hourlog/internal/domain/profile"
	"hourlog/internal/domain/session"
)

// Narrow read interfaces shared by the query projections. Each projection
// declares only what it consumes; the concrete list-backed stores satisfy all
// of them.

// SessionLister lists sessions.
type SessionLister interface {
	List(ctx context.Context) ([]session.Session, error)
}

// EntryLister lists entries.
type EntryLister interface {
	List(ctx context.Context) ([]entry.Entry, error)
}

// GroupLister lists groups.
type GroupLister interface {
	List(ctx context.Context) ([]group.Group, error)
}

// ProfileLister lists profiles.
type ProfileLister interface {
	List(ctx context.Context) ([]profile.Profile, error)
}

// RecordLister lists consent records.
type RecordLister interface {
	List(ctx context.Context) ([]consent.Record, error)
}

package entry

import (
	"context"

	domain "hourlog/internal/domain/entry"
)

// Store persists Entry state.
type Store interface {
	List(ctx context.Context) ([]domain.Entry, error)
	GetByID(ctx context.Context, id int) (domain.Entry, error)
	ListBySession(ctx context.Context, sessionID int) ([]domain.Entry, error)
	ListByProfile(ctx context.Context, profileID int) ([]domain.Entry, error)
	Create(ctx context.Context, e domain.Entry) (int, error)
	Update(ctx context.Context, id int, u Update) error
	Delete(ctx context.Context, id int) error
}

// Update carries a partial edit; nil fields are left untouched.
type Update struct {
	Count     *int
	CheckedIn *bool
	Hours     *float64
	Notes     *string
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.Count == nil && u.CheckedIn == nil && u.Hours == nil && u.Notes == nil
}

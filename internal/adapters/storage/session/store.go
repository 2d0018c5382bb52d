package session

import (
	"context"

	domain "hourlog/internal/domain/session"
)

// Store persists Session state.
type Store interface {
	List(ctx context.Context) ([]domain.Session, error)
	GetByID(ctx context.Context, id int) (domain.Session, error)
	Create(ctx context.Context, s domain.Session) (int, error)
	Update(ctx context.Context, id int, u Update) error
	Delete(ctx context.Context, id int) error
}

// Update carries a partial edit; nil fields are left untouched.
type Update struct {
	LookupKey *string
	Name      *string
	Notes     *string
	Date      *string
	GroupID   *int
	EventID   *string
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.LookupKey == nil && u.Name == nil && u.Notes == nil &&
		u.Date == nil && u.GroupID == nil && u.EventID == nil
}

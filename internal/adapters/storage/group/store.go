package group

import (
	"context"

	domain "hourlog/internal/domain/group"
)

// Store persists Group state.
type Store interface {
	List(ctx context.Context) ([]domain.Group, error)
	GetByID(ctx context.Context, id int) (domain.Group, error)
	GetByLookupKey(ctx context.Context, key string) (domain.Group, error)
	Create(ctx context.Context, g domain.Group) (int, error)
	Update(ctx context.Context, id int, u Update) error
	Delete(ctx context.Context, id int) error
}

// Update carries a partial edit; nil fields are left untouched.
type Update struct {
	LookupKey   *string
	Name        *string
	Description *string
	SeriesID    *string
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.LookupKey == nil && u.Name == nil && u.Description == nil && u.SeriesID == nil
}

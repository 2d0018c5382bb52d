package profile

import (
	"context"

	domain "hourlog/internal/domain/profile"
)

// Store persists Profile state.
type Store interface {
	List(ctx context.Context) ([]domain.Profile, error)
	GetByID(ctx context.Context, id int) (domain.Profile, error)
	GetBySlug(ctx context.Context, slug string) (domain.Profile, error)
	Create(ctx context.Context, p domain.Profile) (int, error)
	Update(ctx context.Context, id int, u Update) error
	Delete(ctx context.Context, id int) error
}

// Update carries a partial edit; nil fields are left untouched.
type Update struct {
	Name      *string
	Email     *string
	MatchName *string
	IsGroup   *bool
	Username  *string
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.Name == nil && u.Email == nil && u.MatchName == nil &&
		u.IsGroup == nil && u.Username == nil
}

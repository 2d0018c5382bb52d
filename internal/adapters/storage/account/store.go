package account

import (
	"context"

	domain "hourlog/internal/domain/account"
)

// Store persists operator accounts.
type Store interface {
	List(ctx context.Context) ([]domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	Create(ctx context.Context, a domain.Account) (int, error)
	Update(ctx context.Context, id int, u Update) error
	Delete(ctx context.Context, id int) error
}

// Update carries a partial edit; nil fields are left untouched.
type Update struct {
	PasswordHash *string
	Role         *string
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.PasswordHash == nil && u.Role == nil
}

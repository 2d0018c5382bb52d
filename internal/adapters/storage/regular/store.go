package regular

import (
	"context"

	domain "hourlog/internal/domain/regular"
)

// Store persists Regular state (the durable "expected at every session of
// this group" markers).
type Store interface {
	List(ctx context.Context) ([]domain.Regular, error)
	ListByGroup(ctx context.Context, groupID int) ([]domain.Regular, error)
	Create(ctx context.Context, r domain.Regular) (int, error)
	Delete(ctx context.Context, id int) error
}

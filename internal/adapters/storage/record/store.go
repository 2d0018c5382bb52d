package record

import (
	"context"

	domain "hourlog/internal/domain/consent"
)

// Store persists ConsentRecord state. At most one record per
// (profileID, type) is kept current; Upsert enforces it.
type Store interface {
	List(ctx context.Context) ([]domain.Record, error)
	ListByProfile(ctx context.Context, profileID int) ([]domain.Record, error)
	Upsert(ctx context.Context, r domain.Record) (int, error)
	Delete(ctx context.Context, id int) error
	TypeChoices(ctx context.Context) ([]string, error)
	StatusChoices(ctx context.Context) ([]string, error)
}

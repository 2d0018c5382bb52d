package orchestrators

import (
	"context"
	"log/slog"

	"hourlog/internal/domain/account"
)

// SeedAccountStore defines the account persistence interface for seeding.
type SeedAccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Create(ctx context.Context, a account.Account) (int, error)
}

// SeedAdminInput carries the first-run admin credentials, usually from
// environment configuration.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for ExecuteSeedAdmin.
type SeedAdminDeps struct {
	AccountStore SeedAccountStore
}

// ExecuteSeedAdmin creates the admin account on first run. Idempotent: an
// existing account with the email is left untouched, password included.
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" || input.Password == "" {
		slog.Info("seed_admin_skipped", "reason", "no credentials configured")
		return nil
	}
	if existing, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil && existing.ID > 0 {
		return nil
	}

	a := account.Account{Email: input.Email, Role: account.RoleAdmin}
	if err := a.SetPassword(input.Password); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return err
	}
	id, err := deps.AccountStore.Create(ctx, a)
	if err != nil {
		return err
	}
	slog.Info("seed_admin_created", "id", id, "email", a.Email)
	return nil
}

package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"hourlog/internal/domain/account"
)

// ErrInvalidCredentials is returned for any login failure. Unknown email and
// wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AccountStore defines the account persistence interface for login.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for ExecuteLogin.
type LoginDeps struct {
	AccountStore AccountStore
}

// ExecuteLogin verifies credentials and returns the account.
// POST: Returns ErrInvalidCredentials on any failure path
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (account.Account, error) {
	if input.Email == "" || input.Password == "" {
		return account.Account{}, ErrInvalidCredentials
	}
	a, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		return account.Account{}, ErrInvalidCredentials
	}
	if err := a.CheckPassword(input.Password); err != nil {
		slog.Warn("login_failed", "email", input.Email)
		return account.Account{}, ErrInvalidCredentials
	}
	slog.Info("login_succeeded", "email", a.Email, "role", a.Role)
	return a, nil
}

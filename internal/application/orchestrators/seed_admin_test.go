package orchestrators

import (
	"context"
	"fmt"
	"testing"

	"hourlog/internal/domain/account"
)

type memAccountStore struct{ accounts []account.Account }

func (m *memAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, fmt.Errorf("account %q not found", email)
}

func (m *memAccountStore) Create(_ context.Context, a account.Account) (int, error) {
	a.ID = len(m.accounts) + 1
	m.accounts = append(m.accounts, a)
	return a.ID, nil
}

// TestSeedAdminIsIdempotent verifies re-running the seed never overwrites an
// existing account.
func TestSeedAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := &memAccountStore{}
	input := SeedAdminInput{Email: "ops@example.org", Password: "a long enough password"}
	deps := SeedAdminDeps{AccountStore: store}

	if err := ExecuteSeedAdmin(ctx, input, deps); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if len(store.accounts) != 1 {
		t.Fatalf("account count = %d, want 1", len(store.accounts))
	}
	firstHash := store.accounts[0].PasswordHash

	input.Password = "a different long password"
	if err := ExecuteSeedAdmin(ctx, input, deps); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(store.accounts) != 1 {
		t.Errorf("account count = %d after reseed, want 1", len(store.accounts))
	}
	if store.accounts[0].PasswordHash != firstHash {
		t.Error("reseed must not change the existing password hash")
	}
}

// TestSeedAdminSkipsWithoutCredentials verifies the seed is a no-op when not
// configured.
func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	store := &memAccountStore{}
	if err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{}, SeedAdminDeps{AccountStore: store}); err != nil {
		t.Fatalf("ExecuteSeedAdmin: %v", err)
	}
	if len(store.accounts) != 0 {
		t.Errorf("account count = %d, want 0", len(store.accounts))
	}
}

// TestLoginRejectsBadCredentials verifies a single opaque error for unknown
// email and wrong password.
func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	a := account.Account{ID: 1, Email: "ops@example.org", Role: account.RoleAdmin}
	if err := a.SetPassword("a long enough password"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	deps := LoginDeps{AccountStore: &memAccountStore{accounts: []account.Account{a}}}

	if _, err := ExecuteLogin(ctx, LoginInput{Email: "nobody@example.org", Password: "x"}, deps); err != ErrInvalidCredentials {
		t.Errorf("unknown email: got %v", err)
	}
	if _, err := ExecuteLogin(ctx, LoginInput{Email: "ops@example.org", Password: "wrong"}, deps); err != ErrInvalidCredentials {
		t.Errorf("wrong password: got %v", err)
	}
	got, err := ExecuteLogin(ctx, LoginInput{Email: "ops@example.org", Password: "a long enough password"}, deps)
	if err != nil || got.ID != 1 {
		t.Errorf("valid login: got %+v, %v", got, err)
	}
}

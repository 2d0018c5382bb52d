package account

import (
	"context"
	"fmt"
	"strings"

	"hourlog/internal/adapters/liststore"
	domain "hourlog/internal/domain/account"
)

const collection = "Accounts"

var selectFields = []string{"Title", "PasswordHash", "Role"}

// ListStore implements Store against the list store. The Title column holds
// the account email.
type ListStore struct {
	client liststore.Client
}

// NewListStore creates an account store over the given client.
func NewListStore(client liststore.Client) *ListStore {
	return &ListStore{client: client}
}

// List returns all accounts.
func (s *ListStore) List(ctx context.Context) ([]domain.Account, error) {
	records, err := s.client.ListItems(ctx, collection, liststore.Query{Select: selectFields})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	records = liststore.ValidateCollection(records, collection)
	accounts := make([]domain.Account, 0, len(records))
	for _, r := range records {
		accounts = append(accounts, convert(r))
	}
	return accounts, nil
}

// GetByEmail returns the account with the given email, case-insensitive.
func (s *ListStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, a := range accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return domain.Account{}, fmt.Errorf("account %q: %w", email, liststore.ErrNotFound)
}

// Create persists a new account and returns its id.
// PRE: a has been validated and the password hash set
func (s *ListStore) Create(ctx context.Context, a domain.Account) (int, error) {
	fields := map[string]any{
		"Title":        a.Email,
		"PasswordHash": a.PasswordHash,
		"Role":         a.Role,
	}
	id, err := s.client.CreateItem(ctx, collection, fields)
	if err != nil {
		return 0, fmt.Errorf("create account: %w", err)
	}
	return id, nil
}

// Update applies a partial edit.
// PRE: u is not Empty
func (s *ListStore) Update(ctx context.Context, id int, u Update) error {
	fields := map[string]any{}
	if u.PasswordHash != nil {
		fields["PasswordHash"] = *u.PasswordHash
	}
	if u.Role != nil {
		fields["Role"] = *u.Role
	}
	if err := s.client.UpdateItem(ctx, collection, id, fields); err != nil {
		return fmt.Errorf("update account %d: %w", id, err)
	}
	return nil
}

// Delete removes an account.
func (s *ListStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteItem(ctx, collection, id); err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}

func convert(r liststore.Record) domain.Account {
	return domain.Account{
		ID:           r.ID,
		Email:        r.Str("Title"),
		PasswordHash: r.Str("PasswordHash"),
		Role:         r.Str("Role"),
	}
}

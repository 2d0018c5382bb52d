// Package liststore talks to the remote list-based store that owns all
// persistent state. The application does not control this store: records
// arrive with inconsistent field names, stringly-typed lookups and partially
// populated legacy columns, so everything read through here is treated as
// untrusted until converted and validated by the per-entity stores.
package liststore

import (
	"context"
	"errors"
	"time"

	"hourlog/internal/domain/ident"
)

// Stable sentinel errors for upstream failures. A failed fetch aborts the
// whole request (fail fast); these carry the human-readable message mapped at
// the storage boundary.
var (
	ErrUnauthorized = errors.New("list store authentication failed")
	ErrForbidden    = errors.New("list store access denied")
	ErrNotFound     = errors.New("list store item not found")
)

// Query narrows a collection fetch. Select is required; Filter and OrderBy
// use the store's expression syntax and may be empty.
type Query struct {
	Select  []string
	Filter  string
	OrderBy string
}

// Client is the storage collaborator contract. ListItems must transparently
// paginate until the collection is exhausted; callers never see partial pages.
type Client interface {
	ListItems(ctx context.Context, collection string, q Query) ([]Record, error)
	CreateItem(ctx context.Context, collection string, fields map[string]any) (int, error)
	UpdateItem(ctx context.Context, collection string, id int, fields map[string]any) error
	DeleteItem(ctx context.Context, collection string, id int) error
	ListChoiceValues(ctx context.Context, collection, column string) ([]string, error)
}

// Record is one raw list item: the store-assigned id, the two system
// timestamps, and the typed-column field map.
type Record struct {
	ID       int
	Created  time.Time
	Modified time.Time
	Fields   map[string]any
}

// Str returns a string field, "" when absent or differently typed.
func (r Record) Str(name string) string {
	if v, ok := r.Fields[name].(string); ok {
		return v
	}
	return ""
}

// Bool returns a boolean field. Legacy columns sometimes store "Yes"/"No" or
// "true" strings, which are honored here.
func (r Record) Bool(name string) bool {
	switch v := r.Fields[name].(type) {
	case bool:
		return v
	case string:
		return v == "Yes" || v == "yes" || v == "true" || v == "TRUE" || v == "1"
	case float64:
		return v != 0
	default:
		return false
	}
}

// Float returns a numeric field, 0 on absence or parse failure.
func (r Record) Float(name string) float64 {
	switch v := r.Fields[name].(type) {
	case float64:
		return v
	case string:
		// stringly-typed legacy numerics
		return ident.ParseHours(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Int returns an integer field, 0 on absence or parse failure.
func (r Record) Int(name string) int {
	return int(r.Float(name))
}

// LookupID resolves a lookup-reference field to its numeric id. JSON numbers
// and stringly-typed ids are both accepted; anything else is 0.
func (r Record) LookupID(name string) int {
	switch v := r.Fields[name].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case string:
		if id, ok := ident.ParseLookupID(v); ok {
			return id
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return 0
}

// Date returns the date portion (YYYY-MM-DD) of a date or datetime field.
func (r Record) Date(name string) string {
	s := r.Str(name)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

package liststore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteClient is the local development backend. It implements the same
// Client contract as the remote store against a single items table with the
// field map JSON-encoded, so the per-entity stores and everything above them
// run unchanged without network access.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens (and if needed creates) the local database.
// POST: The items table exists and the client is ready for queries
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	// Single writer keeps "database is locked" errors out of dev workflows.
	db.SetMaxOpenConns(1)

	schema := `CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		created TEXT NOT NULL,
		modified TEXT NOT NULL,
		fields TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_items_collection ON items(collection);
	CREATE TABLE IF NOT EXISTS choices (
		collection TEXT NOT NULL,
		column_name TEXT NOT NULL,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create local store schema: %w", err)
	}
	return &SQLiteClient{db: db}, nil
}

// Close releases the underlying database handle.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// ListItems returns every item in a collection. The remote store's filter and
// ordering expressions cover only the subset the application actually issues:
// single "Field eq value" filters and single-column ordering.
func (c *SQLiteClient) ListItems(ctx context.Context, collection string, q Query) ([]Record, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, created, modified, fields FROM items WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			id                int
			created, modified string
			raw               string
		)
		if err := rows.Scan(&id, &created, &modified, &raw); err != nil {
			return nil, fmt.Errorf("scan %s item: %w", collection, err)
		}
		fields := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("decode %s item %d: %w", collection, id, err)
		}
		r := Record{ID: id, Fields: fields}
		r.Created, _ = time.Parse(time.RFC3339, created)
		r.Modified, _ = time.Parse(time.RFC3339, modified)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return applyFilter(records, q.Filter), nil
}

// CreateItem inserts an item and returns its assigned id.
func (c *SQLiteClient) CreateItem(ctx context.Context, collection string, fields map[string]any) (int, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return 0, fmt.Errorf("encode %s item: %w", collection, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO items (collection, created, modified, fields) VALUES (?, ?, ?, ?)`,
		collection, now, now, string(raw))
	if err != nil {
		return 0, fmt.Errorf("insert %s item: %w", collection, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s item: %w", collection, err)
	}
	return int(id), nil
}

// UpdateItem merges the given fields into an existing item's field map.
func (c *SQLiteClient) UpdateItem(ctx context.Context, collection string, id int, fields map[string]any) error {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT fields FROM items WHERE collection = ? AND id = ?`, collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load %s/%d: %w", collection, id, err)
	}

	existing := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		return fmt.Errorf("decode %s/%d: %w", collection, id, err)
	}
	for k, v := range fields {
		existing[k] = v
	}
	merged, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("encode %s/%d: %w", collection, id, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = c.db.ExecContext(ctx,
		`UPDATE items SET fields = ?, modified = ? WHERE collection = ? AND id = ?`,
		string(merged), now, collection, id)
	if err != nil {
		return fmt.Errorf("update %s/%d: %w", collection, id, err)
	}
	return nil
}

// DeleteItem removes an item.
func (c *SQLiteClient) DeleteItem(ctx context.Context, collection string, id int) error {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM items WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("delete %s/%d: %w", collection, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListChoiceValues returns locally seeded choice values, which may be empty;
// callers fall back to their built-in defaults.
func (c *SQLiteClient) ListChoiceValues(ctx context.Context, collection, column string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT value FROM choices WHERE collection = ? AND column_name = ? ORDER BY rowid`, collection, column)
	if err != nil {
		return nil, fmt.Errorf("choices %s.%s: %w", collection, column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("choices %s.%s: %w", collection, column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// applyFilter evaluates the "Field eq value" subset of the store's filter
// syntax in memory. An unparseable filter returns everything rather than
// silently nothing.
func applyFilter(records []Record, filter string) []Record {
	if filter == "" {
		return records
	}
	parts := strings.SplitN(filter, " eq ", 2)
	if len(parts) != 2 {
		return records
	}
	field := strings.TrimPrefix(strings.TrimSpace(parts[0]), "fields/")
	want := strings.Trim(strings.TrimSpace(parts[1]), "'")

	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if matchesField(r, field, want) {
			kept = append(kept, r)
		}
	}
	return kept
}

func matchesField(r Record, field, want string) bool {
	v, ok := r.Fields[field]
	if !ok {
		return false
	}
	switch tv := v.(type) {
	case string:
		return tv == want
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64) == want
	case bool:
		return strconv.FormatBool(tv) == want
	default:
		return false
	}
}

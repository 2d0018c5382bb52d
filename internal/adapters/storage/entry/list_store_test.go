package entry

import (
	"context"
	"testing"
	"time"

	"hourlog/internal/adapters/liststore"
)

// fakeClient serves canned records and captures writes.
type fakeClient struct {
	records []liststore.Record
	created []map[string]any
	updated map[int]map[string]any
}

func (f *fakeClient) ListItems(_ context.Context, _ string, _ liststore.Query) ([]liststore.Record, error) {
	return f.records, nil
}

func (f *fakeClient) CreateItem(_ context.Context, _ string, fields map[string]any) (int, error) {
	f.created = append(f.created, fields)
	return 100 + len(f.created), nil
}

func (f *fakeClient) UpdateItem(_ context.Context, _ string, id int, fields map[string]any) error {
	if f.updated == nil {
		f.updated = map[int]map[string]any{}
	}
	f.updated[id] = fields
	return nil
}

func (f *fakeClient) DeleteItem(_ context.Context, _ string, _ int) error { return nil }

func (f *fakeClient) ListChoiceValues(_ context.Context, _, _ string) ([]string, error) {
	return nil, nil
}

func rec(id int, fields map[string]any) liststore.Record {
	now := time.Now()
	return liststore.Record{ID: id, Created: now, Modified: now, Fields: fields}
}

// TestListConvertsLegacyColumns verifies the legacy naming scheme maps the
// space-encoded join columns and the Comments notes column.
func TestListConvertsLegacyColumns(t *testing.T) {
	client := &fakeClient{records: []liststore.Record{
		rec(1, map[string]any{
			"Session_x0020_DateLookupId":   float64(7),
			"Volunteer_x0020_NameLookupId": "12",
			"Count":                        float64(2),
			"CheckedIn":                    true,
			"Hours":                        "3.5",
			"Comments":                     "#New #Child",
		}),
	}}
	store := NewListStore(client, liststore.LegacyNames())

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.SessionID != 7 || e.ProfileID != 12 {
		t.Errorf("joins = (%d,%d), want (7,12)", e.SessionID, e.ProfileID)
	}
	if e.Count != 2 || !e.CheckedIn || e.Hours != 3.5 {
		t.Errorf("values = %+v", e)
	}
	if e.Notes != "#New #Child" {
		t.Errorf("notes = %q", e.Notes)
	}
}

// TestListDefaultsCount verifies a missing count is normalized to 1.
func TestListDefaultsCount(t *testing.T) {
	client := &fakeClient{records: []liststore.Record{
		rec(2, map[string]any{"SessionLookupId": float64(1), "ProfileLookupId": float64(2)}),
	}}
	store := NewListStore(client, liststore.CleanNames())

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries[0].Count != 1 {
		t.Errorf("count = %d, want 1", entries[0].Count)
	}
}

// TestUpdateWritesSchemeColumns verifies partial updates only touch the
// mentioned columns, with notes going to the scheme's column name.
func TestUpdateWritesSchemeColumns(t *testing.T) {
	client := &fakeClient{}
	store := NewListStore(client, liststore.LegacyNames())

	notes := "#Regular"
	if err := store.Update(context.Background(), 5, Update{Notes: &notes}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	fields := client.updated[5]
	if len(fields) != 1 {
		t.Fatalf("updated %d fields, want 1", len(fields))
	}
	if fields["Comments"] != "#Regular" {
		t.Errorf("fields = %v", fields)
	}
}

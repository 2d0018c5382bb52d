package liststore

import "testing"

// TestRecordGetters exercises the defensive accessors against the typed,
// stringly-typed and absent shapes the store actually returns.
func TestRecordGetters(t *testing.T) {
	r := Record{Fields: map[string]any{
		"Title":      "Morning Shift",
		"Hours":      3.5,
		"HoursText":  "2.5",
		"CheckedIn":  true,
		"Consented":  "Yes",
		"Count":      float64(4),
		"GroupID":    float64(12),
		"GroupIDStr": "7",
		"When":       "2025-04-01T10:00:00Z",
		"Day":        "2025-04-01",
	}}

	if got := r.Str("Title"); got != "Morning Shift" {
		t.Errorf("Str = %q", got)
	}
	if got := r.Str("Missing"); got != "" {
		t.Errorf("Str missing = %q, want empty", got)
	}
	if got := r.Float("Hours"); got != 3.5 {
		t.Errorf("Float = %v", got)
	}
	if got := r.Float("HoursText"); got != 2.5 {
		t.Errorf("Float from string = %v", got)
	}
	if got := r.Float("Title"); got != 0 {
		t.Errorf("Float from non-numeric = %v, want 0", got)
	}
	if !r.Bool("CheckedIn") || !r.Bool("Consented") {
		t.Error("Bool should accept true and \"Yes\"")
	}
	if r.Bool("Missing") {
		t.Error("Bool missing should be false")
	}
	if got := r.Int("Count"); got != 4 {
		t.Errorf("Int = %d", got)
	}
	if got := r.LookupID("GroupID"); got != 12 {
		t.Errorf("LookupID float = %d", got)
	}
	if got := r.LookupID("GroupIDStr"); got != 7 {
		t.Errorf("LookupID string = %d", got)
	}
	if got := r.LookupID("Title"); got != 0 {
		t.Errorf("LookupID non-id = %d, want 0", got)
	}
	if got := r.Date("When"); got != "2025-04-01" {
		t.Errorf("Date from datetime = %q", got)
	}
	if got := r.Date("Day"); got != "2025-04-01" {
		t.Errorf("Date from date = %q", got)
	}
}

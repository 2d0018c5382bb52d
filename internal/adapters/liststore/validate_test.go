package liststore

import (
	"testing"
	"time"
)

// TestValidateCollection verifies malformed records are dropped and sound
// ones survive in order.
func TestValidateCollection(t *testing.T) {
	now := time.Now()
	records := []Record{
		{ID: 1, Created: now, Modified: now},
		{ID: 0, Created: now, Modified: now},  // missing id
		{ID: 2, Modified: now},                // missing created
		{ID: 3, Created: now},                 // missing modified
		{ID: 4, Created: now, Modified: now},
	}

	kept := ValidateCollection(records, "Sessions")
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
	if kept[0].ID != 1 || kept[1].ID != 4 {
		t.Errorf("kept ids %d,%d; want 1,4", kept[0].ID, kept[1].ID)
	}
}

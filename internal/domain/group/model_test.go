package group

import "testing"

// TestValidate verifies the lookup-key invariant.
func TestValidate(t *testing.T) {
	g := Group{LookupKey: "sat", Name: "Saturday Dig"}
	if err := g.Validate(); err != nil {
		t.Errorf("expected valid group, got %v", err)
	}

	g = Group{Name: "No Key"}
	if err := g.Validate(); err != ErrEmptyKey {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
}

// TestDisplayName verifies the Name-over-key preference. Swapping this breaks
// lookup joins, which run on the key only.
func TestDisplayName(t *testing.T) {
	g := Group{LookupKey: "sat", Name: "Saturday Dig"}
	if got := g.DisplayName(); got != "Saturday Dig" {
		t.Errorf("DisplayName = %q, want Saturday Dig", got)
	}

	g = Group{LookupKey: "sat"}
	if got := g.DisplayName(); got != "sat" {
		t.Errorf("DisplayName fallback = %q, want sat", got)
	}
}

// TestKeyEquals verifies case-insensitive key matching.
func TestKeyEquals(t *testing.T) {
	g := Group{LookupKey: "Sat"}
	if !g.KeyEquals("sat") || !g.KeyEquals("SAT") {
		t.Error("key matching must be case-insensitive")
	}
	if g.KeyEquals("sun") {
		t.Error("different keys must not match")
	}
}

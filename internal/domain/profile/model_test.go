package profile

import "testing"

// TestValidate verifies profile field rules.
func TestValidate(t *testing.T) {
	p := Profile{Name: "Alex Reid", Email: "alex@example.org"}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid profile, got %v", err)
	}

	p = Profile{Name: "  "}
	if err := p.Validate(); err != ErrEmptyName {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}

	p = Profile{Name: "Alex", Email: "not-an-email"}
	if err := p.Validate(); err != ErrInvalidEmail {
		t.Errorf("expected ErrInvalidEmail, got %v", err)
	}

	// Email is optional
	p = Profile{Name: "Alex"}
	if err := p.Validate(); err != nil {
		t.Errorf("expected valid profile without email, got %v", err)
	}
}

// TestMatchKey verifies the two-tier matching key.
func TestMatchKey(t *testing.T) {
	p := Profile{Name: "Alexandra Reid", MatchName: "alex reid"}
	if got := p.MatchKey(); got != "alex reid" {
		t.Errorf("MatchKey = %q, want match-name column", got)
	}

	// Profiles predating the match column fall back to the display name.
	p = Profile{Name: "Alex REID"}
	if got := p.MatchKey(); got != "alex reid" {
		t.Errorf("MatchKey fallback = %q, want lowercased name", got)
	}
}

// TestSlug verifies slug derivation from the display name.
func TestSlug(t *testing.T) {
	p := Profile{Name: "O'Brien"}
	if got := p.Slug(); got != "obrien" {
		t.Errorf("Slug = %q, want obrien", got)
	}
}

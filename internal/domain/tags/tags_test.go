package tags

import "testing"

// TestHas verifies case-insensitive whole-word matching.
func TestHas(t *testing.T) {
	tests := []struct {
		notes string
		tag   string
		want  bool
	}{
		{"#New #Child", "New", true},
		{"#new", "New", true},
		{"#NEW", "new", true},
		{"#NewVolunteer", "New", false},
		{"brought a #child along", "Child", true},
		{"no tags here", "New", false},
		{"", "New", false},
		{"#Regular", "", false},
	}
	for _, tt := range tests {
		if got := Has(tt.notes, tt.tag); got != tt.want {
			t.Errorf("Has(%q, %q) = %v, want %v", tt.notes, tt.tag, got, tt.want)
		}
	}
}

// TestAppend verifies idempotent tag appending.
func TestAppend(t *testing.T) {
	tests := []struct {
		notes string
		tag   string
		want  string
	}{
		{"", "New", "#New"},
		{"   ", "New", "#New"},
		{"#New", "New", "#New"},
		{"#new", "New", "#new"},
		{"helped out", "Regular", "helped out #Regular"},
		{"#New ", "Child", "#New #Child"},
	}
	for _, tt := range tests {
		if got := Append(tt.notes, tt.tag); got != tt.want {
			t.Errorf("Append(%q, %q) = %q, want %q", tt.notes, tt.tag, got, tt.want)
		}
	}
}

// TestParse verifies tag extraction.
func TestParse(t *testing.T) {
	got := Parse("#New some text #Child #child")
	if len(got) != 2 || !got["new"] || !got["child"] {
		t.Errorf("Parse = %v, want {new, child}", got)
	}
	if got := Parse("nothing"); len(got) != 0 {
		t.Errorf("Parse(no tags) = %v, want empty", got)
	}
}

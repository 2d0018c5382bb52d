package ident

import "testing"

// TestToSlug verifies slug normalization rules.
func TestToSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"O'Brien", "obrien"},
		{"O’Brien", "obrien"},
		{"", ""},
		{"  ", ""},
		{"Saturday Dig", "saturday-dig"},
		{"Anna-Marie  Smith", "anna-marie-smith"},
		{"!!Weeding (AM)!!", "weeding-am"},
		{"Ngā Hapori", "ng-hapori"},
	}
	for _, tt := range tests {
		if got := ToSlug(tt.in); got != tt.want {
			t.Errorf("ToSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestParseLookupID verifies defensive lookup-id parsing.
func TestParseLookupID(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"12", 12, true},
		{" 7 ", 7, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLookupID(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLookupID(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

// TestParseHours verifies hour coercion never yields NaN or an error.
func TestParseHours(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{2.5, 2.5},
		{"3", 3},
		{" 1.25 ", 1.25},
		{nil, 0},
		{"", 0},
		{"garbage", 0},
		{"NaN", 0},
		{"+Inf", 0},
		{4, 4},
		{true, 0},
	}
	for _, tt := range tests {
		if got := ParseHours(tt.in); got != tt.want {
			t.Errorf("ParseHours(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

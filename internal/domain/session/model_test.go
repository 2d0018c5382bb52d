package session

import (
	"testing"
	"time"
)

// TestValidate verifies the date-required invariant.
func TestValidate(t *testing.T) {
	s := Session{LookupKey: "2025-04-02 dig", Date: "2025-04-02"}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid session, got %v", err)
	}

	s = Session{LookupKey: "no-date"}
	if err := s.Validate(); err != ErrEmptyDate {
		t.Errorf("expected ErrEmptyDate, got %v", err)
	}

	s = Session{Date: "02/04/2025"}
	if err := s.Validate(); err != ErrBadDate {
		t.Errorf("expected ErrBadDate, got %v", err)
	}
}

// TestFinancialYear verifies FY bucketing from the stored date.
func TestFinancialYear(t *testing.T) {
	s := Session{Date: "2025-03-31"}
	if y, ok := s.FinancialYear(); !ok || y != 2024 {
		t.Errorf("FY(2025-03-31) = (%d, %v), want (2024, true)", y, ok)
	}
	s = Session{Date: "2025-04-01"}
	if y, ok := s.FinancialYear(); !ok || y != 2025 {
		t.Errorf("FY(2025-04-01) = (%d, %v), want (2025, true)", y, ok)
	}
	s = Session{Date: "bogus"}
	if _, ok := s.FinancialYear(); ok {
		t.Error("expected malformed date to report not-ok")
	}
}

// TestIsOnOrAfter verifies date-only comparison.
func TestIsOnOrAfter(t *testing.T) {
	today := time.Date(2025, time.June, 15, 23, 30, 0, 0, time.Local)

	tests := []struct {
		date string
		want bool
	}{
		{"2025-06-15", true}, // same day counts even late in the evening
		{"2025-06-16", true},
		{"2025-06-14", false},
		{"", false},
	}
	for _, tt := range tests {
		s := Session{Date: tt.date}
		if got := s.IsOnOrAfter(today); got != tt.want {
			t.Errorf("IsOnOrAfter(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

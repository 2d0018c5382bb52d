// Package fy computes financial-year buckets. The financial year runs
// 1 April through 31 March of the following calendar year and is identified
// by its start year: 2 April 2025 and 31 March 2026 are both FY2025.
package fy

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used across the list store.
const DateLayout = "2006-01-02"

// Window describes one financial year.
type Window struct {
	StartYear int // calendar year containing 1 April
	EndYear   int // StartYear + 1
}

// Of returns the financial-year start year for a point in time.
// PRE: t is any valid time
// POST: Returns t.Year() when the month is April or later, t.Year()-1 otherwise
func Of(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// OfDate returns the financial-year start year for a YYYY-MM-DD date string.
// PRE: date may be malformed
// POST: Returns (year, true) for a parseable date, (0, false) otherwise
func OfDate(date string) (int, bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, false
	}
	return Of(t), true
}

// Current returns the financial year containing now.
func Current(now time.Time) Window {
	return For(Of(now))
}

// For returns the window for a given start year.
func For(startYear int) Window {
	return Window{StartYear: startYear, EndYear: startYear + 1}
}

// Key returns the canonical string form, e.g. "FY2025".
// Used as a cache and lookup key; only the current and previous windows are
// ever rendered.
func (w Window) Key() string {
	return fmt.Sprintf("FY%d", w.StartYear)
}

// Previous returns the window one year back.
func (w Window) Previous() Window {
	return For(w.StartYear - 1)
}

// Start returns the first day of the window (1 April, local time).
func (w Window) Start() time.Time {
	return time.Date(w.StartYear, time.April, 1, 0, 0, 0, 0, time.Local)
}

// End returns the last day of the window (31 March, local time).
func (w Window) End() time.Time {
	return time.Date(w.EndYear, time.March, 31, 0, 0, 0, 0, time.Local)
}

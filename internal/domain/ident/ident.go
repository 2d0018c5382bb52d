package ident

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// nonAlnum matches runs of characters that are not ASCII letters or digits.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// apostrophes are stripped entirely rather than turned into hyphens so that
// "O'Brien" slugs to "obrien", not "o-brien".
var apostrophes = strings.NewReplacer("'", "", "‘", "", "’", "")

// ParseLookupID parses a lookup reference into a numeric id.
// PRE: raw may be empty or non-numeric
// POST: Returns (id, true) for a positive integer, (0, false) otherwise; never panics
func ParseLookupID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ToSlug converts a display name into a URL-safe slug: lowercased, apostrophes
// removed, runs of non-alphanumerics collapsed to single hyphens, trimmed.
// Slugs are NOT guaranteed unique; two profiles named "Smith" collide.
// PRE: name may be empty
// POST: Returns "" for empty or all-punctuation input
func ToSlug(name string) string {
	s := apostrophes.Replace(strings.ToLower(name))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ParseHours coerces a raw field value to a float number of hours.
// PRE: raw may be any type fetched from the list store
// POST: Returns 0 on any parse failure; never NaN, never panics
func ParseHours(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	default:
		return 0
	}
}

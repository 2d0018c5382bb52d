// Package tags centralizes the hashtag-style annotations carried in entry
// notes ("#New #Child helped with compost"). The notes column is free text;
// tags are a denormalized convention, not a structured field, so all matching
// is case-insensitive whole-word matching on the tag name.
package tags

import (
	"regexp"
	"strings"
	"sync"
)

// Well-known annotation tags.
const (
	New     = "New"     // profile's first-ever entry
	Child   = "Child"   // attendee ticket class contained "child"
	Regular = "Regular" // entry pre-created from a group regular
	NoPhoto = "NoPhoto" // profile without an accepted photo consent
)

var (
	mu       sync.Mutex
	patterns = make(map[string]*regexp.Regexp)
)

// pattern returns the compiled word-boundary matcher for a tag, cached since
// the tag vocabulary is tiny and matching runs once per entry per read.
func pattern(tag string) *regexp.Regexp {
	mu.Lock()
	defer mu.Unlock()
	if re, ok := patterns[tag]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)#` + regexp.QuoteMeta(tag) + `\b`)
	patterns[tag] = re
	return re
}

// Has reports whether notes carry the given tag.
// PRE: notes may be empty; tag is a bare name without '#'
// POST: Matching is case-insensitive and whole-word: "#New" matches "#new"
// but not "#NewVolunteer"
func Has(notes, tag string) bool {
	if notes == "" || tag == "" {
		return false
	}
	return pattern(tag).MatchString(notes)
}

// Append returns notes with the tag added, unless already present.
// PRE: tag is a bare name without '#'
// POST: Existing text is preserved; tags are space-separated
func Append(notes, tag string) string {
	if tag == "" || Has(notes, tag) {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return "#" + tag
	}
	return strings.TrimRight(notes, " ") + " #" + tag
}

// Parse extracts the set of tag names present in notes, lowercased.
// PRE: notes may be empty
// POST: Returns an empty (non-nil) map when no tags are present
func Parse(notes string) map[string]bool {
	found := make(map[string]bool)
	for _, m := range parseRe.FindAllStringSubmatch(notes, -1) {
		found[strings.ToLower(m[1])] = true
	}
	return found
}

var parseRe = regexp.MustCompile(`#([A-Za-z0-9]+)`)

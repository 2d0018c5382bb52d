package liststore

import "log/slog"

// Valid reports whether a fetched record has the minimum shape downstream
// logic trusts: a positive id and both system timestamps. The store can
// return partially-shaped records mid schema migration; those are filtered
// here rather than failing the whole request.
func Valid(r Record) bool {
	return r.ID > 0 && !r.Created.IsZero() && !r.Modified.IsZero()
}

// ValidateCollection filters a fetched collection down to structurally sound
// records, logging each rejection. No valid record is ever dropped, so the
// result length is always <= the input length.
// PRE: label names the collection for logging
// POST: Returns only records passing Valid; never errors
func ValidateCollection(records []Record, label string) []Record {
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if !Valid(r) {
			slog.Warn("record_dropped", "collection", label, "id", r.ID)
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

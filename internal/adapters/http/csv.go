package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"hourlog/internal/application/projections"
	"hourlog/internal/domain/fy"
)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// handleExportSessionsCSV handles GET /api/export/sessions.csv: the same
// enriched rows the JSON list serves, one per session.
func handleExportSessionsCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, err := projections.QueryGetSessions(r.Context(),
		projections.GetSessionsQuery{
			GroupID: queryInt(r, "group_id"),
			FYStart: queryInt(r, "fy"),
		},
		projections.GetSessionsDeps{
			Sessions: stores.SessionStore,
			Entries:  stores.EntryStore,
			Groups:   stores.GroupStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}

	writeCSVHeader(w, "sessions.csv")
	cw := csv.NewWriter(w)
	cw.Write([]string{"Date", "Key", "Name", "Group", "Registrations", "Hours", "Notes"})
	for _, s := range result {
		cw.Write([]string{
			s.Date,
			s.LookupKey,
			s.Name,
			s.GroupName,
			strconv.Itoa(s.Registrations),
			formatHours(s.Hours),
			s.Notes,
		})
	}
	cw.Flush()
}

// handleExportProfilesCSV handles GET /api/export/profiles.csv: one row per
// profile with its derived FY stats and badges.
func handleExportProfilesCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	now := fy.Current(timeNow())
	result, err := projections.QueryGetProfiles(r.Context(),
		projections.GetProfilesQuery{GroupID: queryInt(r, "group_id"), Now: now},
		projections.GetProfilesDeps{
			Profiles: stores.ProfileStore,
			Entries:  stores.EntryStore,
			Sessions: stores.SessionStore,
			Records:  stores.RecordStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}

	writeCSVHeader(w, "profiles.csv")
	cw := csv.NewWriter(w)
	cw.Write([]string{
		"Name", "Slug", "Email", "IsGroup",
		"Hours " + now.Key(), "Sessions " + now.Key(),
		"Hours " + now.Previous().Key(), "Sessions " + now.Previous().Key(),
		"Member", "Discount Card",
	})
	for _, p := range result {
		cw.Write([]string{
			p.Name,
			p.Slug,
			p.Email,
			strconv.FormatBool(p.IsGroup),
			formatHours(p.Stats.HoursThisFY),
			strconv.Itoa(p.Stats.SessionsThisFY),
			formatHours(p.Stats.HoursLastFY),
			strconv.Itoa(p.Stats.SessionsLastFY),
			strconv.FormatBool(p.IsMember),
			p.CardStatus,
		})
	}
	cw.Flush()
}

func writeCSVHeader(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(utf8BOM)
}

// formatHours renders derived hour totals with the single decimal place the
// aggregation engine rounds to.
func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

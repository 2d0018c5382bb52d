package web

import "net/http"

// registerRoutes binds the JSON and CSV API. Method dispatch happens inside
// each handler so one path serves its whole entity.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)

	mux.HandleFunc("/api/dashboard", handleDashboard)

	mux.HandleFunc("/api/groups", handleGroups)
	mux.HandleFunc("/api/groups/detail", handleGroupDetail)

	mux.HandleFunc("/api/sessions", handleSessions)
	mux.HandleFunc("/api/sessions/detail", handleSessionDetail)
	mux.HandleFunc("/api/sessions/hours", handleSessionHours)

	mux.HandleFunc("/api/profiles", handleProfiles)
	mux.HandleFunc("/api/profiles/detail", handleProfileDetail)

	mux.HandleFunc("/api/entries", handleEntries)
	mux.HandleFunc("/api/entries/toggle", handleEntryToggle)

	mux.HandleFunc("/api/consent", handleConsent)
	mux.HandleFunc("/api/consent/choices", handleConsentChoices)
	mux.HandleFunc("/api/invite", handleInvite)

	mux.HandleFunc("/api/regulars", handleRegulars)

	mux.HandleFunc("/api/perf", handlePerf)

	mux.HandleFunc("/api/sync", handleSync)
	mux.HandleFunc("/api/sync/session", handleSyncSession)
	mux.HandleFunc("/api/sync/regulars", handleSyncRegulars)

	mux.HandleFunc("/api/export/sessions.csv", handleExportSessionsCSV)
	mux.HandleFunc("/api/export/profiles.csv", handleExportProfilesCSV)
}

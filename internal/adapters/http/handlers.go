package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"hourlog/internal/adapters/http/middleware"
	entryStore "hourlog/internal/adapters/storage/entry"
	groupStore "hourlog/internal/adapters/storage/group"
	profileStore "hourlog/internal/adapters/storage/profile"
	sessionStore "hourlog/internal/adapters/storage/session"
	"hourlog/internal/application/listutil"
	"hourlog/internal/application/orchestrators"
	"hourlog/internal/application/projections"
	"hourlog/internal/domain/fy"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// strictDecode decodes JSON from the request body, rejecting unknown fields.
// Used for creates; partial updates decode leniently so unknown fields are
// ignored by construction.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// queryInt parses an integer query parameter, 0 when absent or malformed.
func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

// requireSession blocks unauthenticated requests.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Success: false, Error: "unauthorized", Message: "not authenticated"})
		return middleware.Session{}, false
	}
	return sess, true
}

// requireWrite blocks sessions below coordinator.
func requireWrite(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := requireSession(w, r); !ok {
		return false
	}
	if !middleware.CanWrite(r.Context()) {
		writeEnvelope(w, http.StatusForbidden, envelope{Success: false, Error: "forbidden", Message: "write access required"})
		return false
	}
	return true
}

// requireAdmin blocks everything but admin sessions. Deletes and sync runs
// are admin-only.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, ok := requireSession(w, r); !ok {
		return false
	}
	if !middleware.IsAdmin(r.Context()) {
		writeEnvelope(w, http.StatusForbidden, envelope{Success: false, Error: "forbidden", Message: "admin access required"})
		return false
	}
	return true
}

// handleLogin handles POST /api/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var input struct {
		Email    string `json:"Email"`
		Password string `json:"Password"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondInvalid(w, "invalid JSON")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(),
		orchestrators.LoginInput{Email: input.Email, Password: input.Password},
		orchestrators.LoginDeps{AccountStore: stores.AccountStore})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidCredentials) {
			writeEnvelope(w, http.StatusUnauthorized, envelope{Success: false, Error: "unauthorized", Message: err.Error()})
			return
		}
		respondError(w, err)
		return
	}

	token, err := sessions.Create(result.ID, result.Email, result.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	respondData(w, map[string]any{"email": result.Email, "role": result.Role})
}

// handleLogout handles POST /api/logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie("hourlog_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	respondData(w, nil)
}

// handleDashboard handles GET /api/dashboard
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, err := projections.QueryGetDashboard(r.Context(),
		projections.GetDashboardQuery{Now: fy.Current(timeNow())},
		projections.GetDashboardDeps{
			Sessions: stores.SessionStore,
			Entries:  stores.EntryStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

// handleGroups handles GET/POST/PATCH/DELETE for /api/groups
func handleGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		if _, ok := requireSession(w, r); !ok {
			return
		}
		groups, err := stores.GroupStore.List(ctx)
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, groups, len(groups))

	case "POST":
		if !requireWrite(w, r) {
			return
		}
		var input orchestrators.CreateGroupInput
		if err := strictDecode(r, &input); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		id, err := orchestrators.ExecuteCreateGroup(ctx, input,
			orchestrators.CreateGroupDeps{GroupStore: stores.GroupStore})
		if err != nil {
			respondError(w, err)
			return
		}
		respondCreated(w, map[string]int{"id": id})

	case "PATCH":
		if !requireWrite(w, r) {
			return
		}
		var fields groupStore.Update
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		err := orchestrators.ExecuteUpdateGroup(ctx,
			orchestrators.UpdateGroupInput{ID: queryInt(r, "id"), Fields: fields},
			orchestrators.CreateGroupDeps{GroupStore: stores.GroupStore})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	case "DELETE":
		if !requireAdmin(w, r) {
			return
		}
		err := orchestrators.ExecuteDeleteGroup(ctx, queryInt(r, "id"),
			orchestrators.DeleteGroupDeps{
				GroupStore:   stores.GroupStore,
				SessionStore: stores.SessionStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleGroupDetail handles GET /api/groups/detail?key=<lookup key>
func handleGroupDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		respondInvalid(w, "key is required")
		return
	}

	result, err := projections.QueryGetGroupDetail(r.Context(),
		projections.GetGroupDetailQuery{LookupKey: key, Now: fy.Current(timeNow())},
		projections.GetGroupDetailDeps{
			Groups:   stores.GroupStore,
			Sessions: stores.SessionStore,
			Entries:  stores.EntryStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

// handleSessions handles GET/POST/PATCH/DELETE for /api/sessions
func handleSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		if _, ok := requireSession(w, r); !ok {
			return
		}
		result, err := projections.QueryGetSessions(ctx,
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
		if listutil.Requested(r.URL.Query()) {
			page, info := listutil.Paginate(result, listutil.ParsePageParams(r.URL.Query()))
			respondPage(w, page, info)
			return
		}
		respondList(w, result, len(result))

	case "POST":
		if !requireWrite(w, r) {
			return
		}
		var input orchestrators.CreateSessionInput
		if err := strictDecode(r, &input); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		id, err := orchestrators.ExecuteCreateSession(ctx, input,
			orchestrators.CreateSessionDeps{
				SessionStore: stores.SessionStore,
				GroupStore:   stores.GroupStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		respondCreated(w, map[string]int{"id": id})

	case "PATCH":
		if !requireWrite(w, r) {
			return
		}
		var fields sessionStore.Update
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		err := orchestrators.ExecuteUpdateSession(ctx,
			orchestrators.UpdateSessionInput{ID: queryInt(r, "id"), Fields: fields},
			orchestrators.UpdateSessionDeps{
				SessionStore: stores.SessionStore,
				GroupStore:   stores.GroupStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	case "DELETE":
		if !requireAdmin(w, r) {
			return
		}
		err := orchestrators.ExecuteDeleteSession(ctx, queryInt(r, "id"),
			orchestrators.DeleteSessionDeps{
				SessionStore: stores.SessionStore,
				EntryStore:   stores.EntryStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleSessionDetail handles GET /api/sessions/detail?id=<id>
func handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	result, err := projections.QueryGetSessionDetail(r.Context(),
		projections.GetSessionDetailQuery{SessionID: queryInt(r, "id")},
		projections.GetSessionDetailDeps{
			Sessions: stores.SessionStore,
			Entries:  stores.EntryStore,
			Groups:   stores.GroupStore,
			Profiles: stores.ProfileStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

// handleSessionHours handles POST /api/sessions/hours: bulk hours for a
// session's checked-in entries.
func handleSessionHours(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireWrite(w, r) {
		return
	}
	var input orchestrators.SetSessionHoursInput
	if err := strictDecode(r, &input); err != nil {
		respondInvalid(w, "invalid JSON")
		return
	}

	result, err := orchestrators.ExecuteSetSessionHours(r.Context(), input,
		orchestrators.UpdateEntryDeps{EntryStore: stores.EntryStore})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

// handleProfiles handles GET/POST/PATCH/DELETE for /api/profiles
func handleProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		if _, ok := requireSession(w, r); !ok {
			return
		}
		result, err := projections.QueryGetProfiles(ctx,
			projections.GetProfilesQuery{
				GroupID: queryInt(r, "group_id"),
				Now:     fy.Current(timeNow()),
			},
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
		if listutil.Requested(r.URL.Query()) {
			page, info := listutil.Paginate(result, listutil.ParsePageParams(r.URL.Query()))
			respondPage(w, page, info)
			return
		}
		respondList(w, result, len(result))

	case "POST":
		if !requireWrite(w, r) {
			return
		}
		var input orchestrators.CreateProfileInput
		if err := strictDecode(r, &input); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		id, err := orchestrators.ExecuteCreateProfile(ctx, input,
			orchestrators.CreateProfileDeps{ProfileStore: stores.ProfileStore})
		if err != nil {
			respondError(w, err)
			return
		}
		respondCreated(w, map[string]int{"id": id})

	case "PATCH":
		if !requireWrite(w, r) {
			return
		}
		var fields profileStore.Update
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		err := orchestrators.ExecuteUpdateProfile(ctx,
			orchestrators.UpdateProfileInput{ID: queryInt(r, "id"), Fields: fields},
			orchestrators.CreateProfileDeps{ProfileStore: stores.ProfileStore})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	case "DELETE":
		if !requireAdmin(w, r) {
			return
		}
		err := orchestrators.ExecuteDeleteProfile(ctx, queryInt(r, "id"),
			orchestrators.DeleteProfileDeps{
				ProfileStore: stores.ProfileStore,
				EntryStore:   stores.EntryStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleProfileDetail handles GET /api/profiles/detail?id=<id> or ?slug=<slug>
func handleProfileDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}
	id := queryInt(r, "id")
	slug := r.URL.Query().Get("slug")
	if id == 0 && slug == "" {
		respondInvalid(w, "id or slug is required")
		return
	}

	result, err := projections.QueryGetProfileDetail(r.Context(),
		projections.GetProfileDetailQuery{ProfileID: id, Slug: slug, Now: fy.Current(timeNow())},
		projections.GetProfileDetailDeps{
			Profiles: stores.ProfileStore,
			Entries:  stores.EntryStore,
			Sessions: stores.SessionStore,
			Records:  stores.RecordStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

// handleEntries handles POST/PATCH/DELETE for /api/entries
func handleEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "POST":
		if !requireWrite(w, r) {
			return
		}
		var input orchestrators.CreateEntryInput
		if err := strictDecode(r, &input); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		id, err := orchestrators.ExecuteCreateEntry(ctx, input,
			orchestrators.CreateEntryDeps{
				EntryStore:   stores.EntryStore,
				SessionStore: stores.SessionStore,
				ProfileStore: stores.ProfileStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		respondCreated(w, map[string]int{"id": id})

	case "PATCH":
		if !requireWrite(w, r) {
			return
		}
		var fields entryStore.Update
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		err := orchestrators.ExecuteUpdateEntry(ctx,
			orchestrators.UpdateEntryInput{ID: queryInt(r, "id"), Fields: fields},
			orchestrators.UpdateEntryDeps{EntryStore: stores.EntryStore})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	case "DELETE":
		if !requireWrite(w, r) {
			return
		}
		err := orchestrators.ExecuteDeleteEntry(ctx, queryInt(r, "id"),
			orchestrators.UpdateEntryDeps{EntryStore: stores.EntryStore})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleEntryToggle handles POST /api/entries/toggle?id=<id>
func handleEntryToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireWrite(w, r) {
		return
	}

	checkedIn, err := orchestrators.ExecuteToggleCheckIn(r.Context(), queryInt(r, "id"),
		orchestrators.UpdateEntryDeps{EntryStore: stores.EntryStore})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string]bool{"checkedIn": checkedIn})
}

// handleConsent handles POST/DELETE for /api/consent
func handleConsent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "POST":
		if !requireWrite(w, r) {
			return
		}
		var input orchestrators.SetConsentInput
		if err := strictDecode(r, &input); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		if input.Date == "" {
			input.Date = timeNow().Format(fy.DateLayout)
		}
		id, err := orchestrators.ExecuteSetConsent(ctx, input,
			orchestrators.SetConsentDeps{
				RecordStore:  stores.RecordStore,
				ProfileStore: stores.ProfileStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, map[string]int{"id": id})

	case "DELETE":
		if !requireAdmin(w, r) {
			return
		}
		if err := stores.RecordStore.Delete(ctx, queryInt(r, "id")); err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleConsentChoices handles GET /api/consent/choices
func handleConsentChoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	types, err := stores.RecordStore.TypeChoices(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	statuses, err := stores.RecordStore.StatusChoices(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, map[string][]string{"types": types, "statuses": statuses})
}

// handleInvite handles POST /api/invite
func handleInvite(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAdmin(w, r) {
		return
	}
	var input orchestrators.InviteMemberInput
	if err := strictDecode(r, &input); err != nil {
		respondInvalid(w, "invalid JSON")
		return
	}

	err := orchestrators.ExecuteInviteMember(r.Context(), input,
		orchestrators.InviteMemberDeps{
			ProfileStore: stores.ProfileStore,
			RecordStore:  stores.RecordStore,
			EmailSender:  emailSender,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, nil)
}

// handleRegulars handles GET/POST/DELETE for /api/regulars
func handleRegulars(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		if _, ok := requireSession(w, r); !ok {
			return
		}
		groupID := queryInt(r, "group_id")
		if groupID > 0 {
			regulars, err := stores.RegularStore.ListByGroup(ctx, groupID)
			if err != nil {
				respondError(w, err)
				return
			}
			respondList(w, regulars, len(regulars))
			return
		}
		regulars, err := stores.RegularStore.List(ctx)
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, regulars, len(regulars))

	case "POST":
		if !requireWrite(w, r) {
			return
		}
		var input orchestrators.CreateRegularInput
		if err := strictDecode(r, &input); err != nil {
			respondInvalid(w, "invalid JSON")
			return
		}
		id, err := orchestrators.ExecuteCreateRegular(ctx, input, regularDeps())
		if err != nil {
			respondError(w, err)
			return
		}
		respondCreated(w, map[string]int{"id": id})

	case "DELETE":
		if !requireWrite(w, r) {
			return
		}
		if err := orchestrators.ExecuteDeleteRegular(ctx, queryInt(r, "id"), regularDeps()); err != nil {
			respondError(w, err)
			return
		}
		respondData(w, nil)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func regularDeps() orchestrators.CreateRegularDeps {
	return orchestrators.CreateRegularDeps{
		RegularStore: stores.RegularStore,
		ProfileStore: stores.ProfileStore,
		GroupStore:   stores.GroupStore,
	}
}

// handlePerf handles GET /api/perf?minutes=<window>&top=<n>
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAdmin(w, r) {
		return
	}

	minutes := queryInt(r, "minutes")
	if minutes <= 0 {
		minutes = 60
	}
	topN := queryInt(r, "top")
	if topN <= 0 {
		topN = 10
	}
	respondData(w, perfCollector.Snapshot(timeNow().Add(-time.Duration(minutes)*time.Minute), topN))
}

// handleSync handles POST /api/sync, a full feed reconciliation run.
func handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAdmin(w, r) {
		return
	}
	if syncDeps == nil {
		writeEnvelope(w, http.StatusServiceUnavailable,
			envelope{Success: false, Error: "unavailable", Message: "external feed is not configured"})
		return
	}

	result, err := orchestrators.ExecuteFullSync(r.Context(), *syncDeps)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

// handleSyncSession handles POST /api/sync/session?id=<id>: re-pull
// attendees for one session regardless of its date.
func handleSyncSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireAdmin(w, r) {
		return
	}
	if syncDeps == nil {
		writeEnvelope(w, http.StatusServiceUnavailable,
			envelope{Success: false, Error: "unavailable", Message: "external feed is not configured"})
		return
	}

	result, err := orchestrators.ExecuteRefreshSession(r.Context(),
		orchestrators.RefreshSessionInput{SessionID: queryInt(r, "id")}, syncDeps.Attendees)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

// handleSyncRegulars handles POST /api/sync/regulars?session_id=<id>:
// pre-populate a session's entries from its group's regulars.
func handleSyncRegulars(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireWrite(w, r) {
		return
	}

	result, err := orchestrators.ExecuteSyncRegulars(r.Context(),
		orchestrators.SyncRegularsInput{SessionID: queryInt(r, "session_id")},
		orchestrators.SyncRegularsDeps{
			SessionStore: stores.SessionStore,
			RegularStore: stores.RegularStore,
			EntryStore:   stores.EntryStore,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, result)
}

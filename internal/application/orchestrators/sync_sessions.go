package orchestrators

import (
	"context"
	"log/slog"

	"hourlog/internal/adapters/feed"
	"hourlog/internal/domain/group"
	"hourlog/internal/domain/session"
)

// SyncSessionStore is the session access the session reconciler needs.
type SyncSessionStore interface {
	List(ctx context.Context) ([]session.Session, error)
	Create(ctx context.Context, s session.Session) (int, error)
}

// SyncGroupStore is the group access the session reconciler needs.
type SyncGroupStore interface {
	List(ctx context.Context) ([]group.Group, error)
}

// SyncSessionsDeps holds dependencies for ExecuteSyncSessions.
type SyncSessionsDeps struct {
	Feed         feed.Provider
	GroupStore   SyncGroupStore
	SessionStore SyncSessionStore
}

// SyncSessionsResult reports what one reconciliation run did.
type SyncSessionsResult struct {
	TotalEvents   int
	MatchedEvents int
	NewSessions   int
}

// ExecuteSyncSessions reconciles the external event feed against local
// sessions. Idempotent: the event id is the key, so re-running against an
// unchanged feed creates nothing. Events whose series matches no group are
// irrelevant and count toward neither matched nor created.
func ExecuteSyncSessions(ctx context.Context, deps SyncSessionsDeps) (SyncSessionsResult, error) {
	events, err := deps.Feed.ListOrgEvents(ctx)
	if err != nil {
		return SyncSessionsResult{}, err
	}
	groups, err := deps.GroupStore.List(ctx)
	if err != nil {
		return SyncSessionsResult{}, err
	}
	sessions, err := deps.SessionStore.List(ctx)
	if err != nil {
		return SyncSessionsResult{}, err
	}

	groupBySeries := map[string]group.Group{}
	for _, g := range groups {
		if g.HasSeries() {
			groupBySeries[g.SeriesID] = g
		}
	}
	knownEvents := map[string]bool{}
	for _, s := range sessions {
		if s.IsSynced() {
			knownEvents[s.EventID] = true
		}
	}

	result := SyncSessionsResult{TotalEvents: len(events)}
	for _, ev := range events {
		g, ok := groupBySeries[ev.SeriesID]
		if !ok {
			continue
		}
		result.MatchedEvents++
		if knownEvents[ev.ID] {
			continue
		}
		if len(ev.StartDate) < 10 {
			slog.Warn("sync_event_skipped", "event_id", ev.ID, "reason", "malformed start date")
			continue
		}

		date := ev.StartDate[:10] // date portion only, time of day discarded
		s := session.Session{
			LookupKey: date + " " + g.LookupKey,
			Name:      ev.Name,
			Date:      date,
			GroupID:   g.ID,
			EventID:   ev.ID,
		}
		if err := s.Validate(); err != nil {
			slog.Warn("sync_event_skipped", "event_id", ev.ID, "error", err)
			continue
		}
		if _, err := deps.SessionStore.Create(ctx, s); err != nil {
			slog.Error("sync_session_create_failed", "event_id", ev.ID, "error", err)
			continue
		}
		// Guard against the feed listing the same event twice in one run.
		knownEvents[ev.ID] = true
		result.NewSessions++
	}

	slog.Info("sync_sessions_complete",
		"total", result.TotalEvents, "matched", result.MatchedEvents, "new", result.NewSessions)
	return result, nil
}

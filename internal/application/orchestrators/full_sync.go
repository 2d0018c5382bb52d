package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// FullSyncDeps holds dependencies for the combined sync run.
type FullSyncDeps struct {
	Sessions  SyncSessionsDeps
	Attendees SyncAttendeesDeps
}

// FullSyncResult combines both reconciliation results.
type FullSyncResult struct {
	RunID     string
	Sessions  SyncSessionsResult
	Attendees SyncAttendeesResult
}

// ExecuteFullSync runs session reconciliation then attendee reconciliation,
// so sessions created from new events pick up their attendees in the same
// run. Each run carries a correlation id through the logs.
func ExecuteFullSync(ctx context.Context, deps FullSyncDeps) (FullSyncResult, error) {
	result := FullSyncResult{RunID: uuid.New().String()}
	log := slog.With("sync_run", result.RunID)
	log.Info("full_sync_started")

	sessions, err := ExecuteSyncSessions(ctx, deps.Sessions)
	if err != nil {
		log.Error("full_sync_failed", "stage", "sessions", "error", err)
		return result, err
	}
	result.Sessions = sessions

	attendees, err := ExecuteSyncAttendees(ctx, deps.Attendees)
	if err != nil {
		log.Error("full_sync_failed", "stage", "attendees", "error", err)
		return result, err
	}
	result.Attendees = attendees

	log.Info("full_sync_complete",
		"new_sessions", sessions.NewSessions,
		"new_profiles", attendees.NewProfiles,
		"new_entries", attendees.NewEntries)
	return result, nil
}

// StartSyncWorker runs ExecuteFullSync on a ticker until the context is
// cancelled. A failed run is logged and the worker keeps going; sync failures
// are never fatal to the process.
// PRE: interval > 0 (callers disable the worker by not starting it)
func StartSyncWorker(ctx context.Context, interval time.Duration, deps FullSyncDeps) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		slog.Info("sync_worker_started", "interval", interval.String())

		for {
			select {
			case <-ctx.Done():
				slog.Info("sync_worker_stopped")
				return
			case <-ticker.C:
				if _, err := ExecuteFullSync(ctx, deps); err != nil {
					slog.Error("sync_worker_run_failed", "error", err)
				}
			}
		}
	}()
}

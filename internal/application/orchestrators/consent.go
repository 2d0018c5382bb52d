package orchestrators

import (
	"context"
	"log/slog"

	"hourlog/internal/domain/consent"
	"hourlog/internal/domain/faults"
)

// RecordStore defines the consent-record persistence interface.
type RecordStore interface {
	ListByProfile(ctx context.Context, profileID int) ([]consent.Record, error)
	Upsert(ctx context.Context, r consent.Record) (int, error)
	Delete(ctx context.Context, id int) error
	StatusChoices(ctx context.Context) ([]string, error)
}

// SetConsentInput carries input for the consent upsert.
type SetConsentInput struct {
	ProfileID int
	Type      string
	Status    string
	Date      string
}

// SetConsentDeps holds dependencies for ExecuteSetConsent.
type SetConsentDeps struct {
	RecordStore  RecordStore
	ProfileStore ProfileStore
}

// ExecuteSetConsent records the latest consent state for (profile, type).
// Latest wins; there is no history.
func ExecuteSetConsent(ctx context.Context, input SetConsentInput, deps SetConsentDeps) (int, error) {
	r := consent.Record{
		ProfileID: input.ProfileID,
		Type:      input.Type,
		Status:    input.Status,
		Date:      input.Date,
	}
	if err := r.Validate(); err != nil {
		return 0, faults.Invalidf("%s", err)
	}
	if _, err := deps.ProfileStore.GetByID(ctx, r.ProfileID); err != nil {
		return 0, faults.NotFoundf("profile %d not found", r.ProfileID)
	}

	statuses, err := deps.RecordStore.StatusChoices(ctx)
	if err == nil && len(statuses) > 0 && !contains(statuses, r.Status) {
		return 0, faults.Invalidf("status %q is not a configured choice", r.Status)
	}

	id, err := deps.RecordStore.Upsert(ctx, r)
	if err != nil {
		return 0, err
	}
	slog.Info("consent_set", "profile_id", r.ProfileID, "type", r.Type, "status", r.Status)
	return id, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hourlog/internal/adapters/email"
	"hourlog/internal/domain/consent"
	"hourlog/internal/domain/faults"
	"hourlog/internal/domain/fy"
)

// InviteMemberInput carries input for the membership invite.
type InviteMemberInput struct {
	ProfileID int
}

// InviteMemberDeps holds dependencies for ExecuteInviteMember.
type InviteMemberDeps struct {
	ProfileStore ProfileStore
	RecordStore  RecordStore
	EmailSender  email.Sender // optional: nil records the invite without emailing
}

// ExecuteInviteMember records an Invited charity-membership state for the
// profile and emails the invitation. The record write is the source of truth;
// a failed email is logged but does not roll it back.
// PRE: The profile exists, is not a group profile, and has an email address
func ExecuteInviteMember(ctx context.Context, input InviteMemberInput, deps InviteMemberDeps) error {
	p, err := deps.ProfileStore.GetByID(ctx, input.ProfileID)
	if err != nil {
		return faults.NotFoundf("profile %d not found", input.ProfileID)
	}
	if p.IsGroup {
		return faults.Invalidf("group profiles cannot hold individual memberships")
	}
	if p.Email == "" {
		return faults.Invalidf("profile %d has no email address", input.ProfileID)
	}

	existing, err := deps.RecordStore.ListByProfile(ctx, p.ID)
	if err != nil {
		return err
	}
	for _, r := range existing {
		if r.IsAcceptedMembership() {
			return faults.Conflictf("profile %d is already a member", p.ID)
		}
	}

	record := consent.Record{
		ProfileID: p.ID,
		Type:      consent.TypeMembership,
		Status:    consent.StatusInvited,
		Date:      time.Now().Format(fy.DateLayout),
	}
	if _, err := deps.RecordStore.Upsert(ctx, record); err != nil {
		return err
	}

	if deps.EmailSender != nil {
		req := email.SendRequest{
			To:      []string{p.Email},
			Subject: "You're invited to become a charity member",
			HTML: fmt.Sprintf(
				"<p>Kia ora %s,</p><p>Thank you for volunteering with us. You've been invited to become a charity member. Reply to this email to accept.</p>",
				p.Name),
		}
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			slog.Error("invite_email_failed", "profile_id", p.ID, "error", err)
		}
	}

	slog.Info("member_invited", "profile_id", p.ID)
	return nil
}

package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/domain/notification"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type SendRemindersCommand struct {
	Actor authorization.Actor
	// LeadHours overrides the configured reminder lead when positive.
	LeadHours int
}

type SendRemindersResult struct {
	ReminderCount int `json:"reminder_count"`
	SentCount     int `json:"sent_count"`
	SkippedCount  int `json:"skipped_count"`
	FailedCount   int `json:"failed_count"`
}

type SendRemindersUseCase struct {
	repo      account.Repository
	sender    notification.Sender
	templates notification.Templates
	dedup     notification.Deduplicator
	recorder  AuditRecorder
	verifyURL VerifyLinkBuilder
	window    account.Window
	lead      time.Duration
	clock     biztime.Clock
	logger    logger.Interface
}

// NewSendRemindersUseCase builds the reminder job. dedup may be nil.
func NewSendRemindersUseCase(
	repo account.Repository,
	sender notification.Sender,
	templates notification.Templates,
	dedup notification.Deduplicator,
	recorder AuditRecorder,
	verifyURL VerifyLinkBuilder,
	clock biztime.Clock,
	lifecycle config.LifecycleConfig,
	logger logger.Interface,
) *SendRemindersUseCase {
	return &SendRemindersUseCase{
		repo:      repo,
		sender:    sender,
		templates: templates,
		dedup:     dedup,
		recorder:  recorder,
		verifyURL: verifyURL,
		window:    account.NewWindow(lifecycle.VerificationTTL()),
		lead:      lifecycle.ReminderLead(),
		clock:     clock,
		logger:    logger,
	}
}

// Execute mails every account whose age lies in [TTL-lead, TTL). A failed
// send is logged and counted; it never stops the batch. Only the candidate
// query failing aborts the run.
func (uc *SendRemindersUseCase) Execute(ctx context.Context, cmd SendRemindersCommand) (*SendRemindersResult, error) {
	lead := uc.lead
	if cmd.LeadHours > 0 {
		lead = time.Duration(cmd.LeadHours) * time.Hour
	}
	now := uc.clock.Now()
	after, atOrBefore := uc.window.ReminderRange(now, lead)

	candidates, err := uc.repo.ListReminderCandidates(ctx, after, atOrBefore)
	if err != nil {
		uc.logger.Errorw("failed to select reminder candidates", "error", err)
		return nil, err
	}

	result := &SendRemindersResult{ReminderCount: len(candidates)}
	reminded := make([]string, 0, len(candidates))

	for _, acc := range candidates {
		switch uc.remind(ctx, acc, now) {
		case reminderSent:
			result.SentCount++
			reminded = append(reminded, acc.Username())
		case reminderSkipped:
			result.SkippedCount++
		default:
			result.FailedCount++
		}
	}

	if result.SentCount > 0 {
		desc := fmt.Sprintf("Sent %d verification reminders: %s", result.SentCount, strings.Join(reminded, ", "))
		if err := uc.recorder.Record(ctx, cmd.Actor, audit.ActionVerificationReminder, desc, map[string]any{
			"usernames":  reminded,
			"lead_hours": int(lead.Hours()),
		}); err != nil {
			uc.logger.Warnw("reminders sent but audit record failed", "error", err)
		}
	}

	uc.logger.Infow("verification reminders processed",
		"reminder_count", result.ReminderCount,
		"sent_count", result.SentCount,
		"skipped_count", result.SkippedCount,
		"failed_count", result.FailedCount,
	)
	return result, nil
}

type reminderOutcome int

const (
	reminderSent reminderOutcome = iota
	reminderSkipped
	reminderFailed
)

// remind claims the dedup key, renders and sends one reminder.
func (uc *SendRemindersUseCase) remind(ctx context.Context, acc *account.Account, now time.Time) reminderOutcome {
	token := acc.VerificationToken()
	if token == nil {
		return reminderSkipped
	}

	key := fmt.Sprintf("verification_reminder:%d", acc.ID())
	if uc.dedup != nil {
		ok, err := uc.dedup.Reserve(ctx, key)
		if err != nil {
			uc.logger.Warnw("reminder dedup unavailable, sending anyway", "account_id", acc.ID(), "error", err)
		} else if !ok {
			uc.logger.Debugw("reminder already sent", "account_id", acc.ID())
			return reminderSkipped
		}
	}

	hoursLeft := account.RemainingHours(acc.CreatedAt().Add(uc.window.TTL), now)
	mail, err := uc.templates.VerificationReminder(acc.Username(), uc.verifyURL(*token), hoursLeft)
	if err == nil {
		err = uc.sender.Send(ctx, acc.Email(), mail.Subject, mail.HTMLBody)
	}
	if err != nil {
		failure := errors.NewNotifierFailureError("failed to send verification reminder", err)
		uc.logger.Warnw("verification reminder not sent",
			"account_id", acc.ID(),
			"email", acc.Email(),
			"error", failure,
		)
		uc.release(ctx, key)
		return reminderFailed
	}
	return reminderSent
}

// release frees the dedup key so the next run can retry the send.
func (uc *SendRemindersUseCase) release(ctx context.Context, key string) {
	if uc.dedup == nil {
		return
	}
	if err := uc.dedup.Release(ctx, key); err != nil {
		uc.logger.Warnw("failed to release reminder dedup key", "key", key, "error", err)
	}
}

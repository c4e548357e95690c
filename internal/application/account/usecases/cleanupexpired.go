package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/mapper"
)

type CleanupResult struct {
	DeletedCount int                 `json:"deleted_count"`
	Accounts     []DeletedAccountDTO `json:"accounts"`
	CutoffTime   string              `json:"cutoff_time"`
}

type CleanupExpiredUseCase struct {
	repo     account.Repository
	recorder AuditRecorder
	window   account.Window
	clock    biztime.Clock
	logger   logger.Interface
}

// NewCleanupExpiredUseCase creates the use case behind both the scheduled
// and the manual cleanup.
func NewCleanupExpiredUseCase(
	repo account.Repository,
	recorder AuditRecorder,
	clock biztime.Clock,
	lifecycle config.LifecycleConfig,
	logger logger.Interface,
) *CleanupExpiredUseCase {
	return &CleanupExpiredUseCase{
		repo:     repo,
		recorder: recorder,
		window:   account.NewWindow(lifecycle.VerificationTTL()),
		clock:    clock,
		logger:   logger,
	}
}

// Execute is the scheduled cleanup.
func (uc *CleanupExpiredUseCase) Execute(ctx context.Context, actor authorization.Actor) (*CleanupResult, error) {
	return uc.run(ctx, actor, audit.ActionUnverifiedCleanup)
}

// Manual is the same cleanup triggered by an administrator.
func (uc *CleanupExpiredUseCase) Manual(ctx context.Context, actor authorization.Actor) (*CleanupResult, error) {
	return uc.run(ctx, actor, audit.ActionUnverifiedManualCleanup)
}

// run deletes every expired unprotected unverified account. A repeat run
// with no new expirations deletes nothing and writes no audit record.
func (uc *CleanupExpiredUseCase) run(ctx context.Context, actor authorization.Actor, action string) (*CleanupResult, error) {
	cutoff := uc.window.Cutoff(uc.clock.Now())

	deleted, err := uc.repo.DeleteExpired(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to delete expired accounts", "cutoff", cutoff, "error", err)
		return nil, err
	}

	result := &CleanupResult{
		DeletedCount: len(deleted),
		Accounts:     mapper.MapSlice(deleted, toDeletedDTO),
		CutoffTime:   biztime.FormatRFC3339(cutoff),
	}
	if result.Accounts == nil {
		result.Accounts = []DeletedAccountDTO{}
	}
	if result.DeletedCount == 0 {
		uc.logger.Infow("no expired unverified accounts", "cutoff", result.CutoffTime)
		return result, nil
	}

	names := usernames(deleted)
	desc := fmt.Sprintf("Deleted %d expired unverified accounts: %s", len(names), strings.Join(names, ", "))
	if err := uc.recorder.Record(ctx, actor, action, desc, map[string]any{
		"usernames": names,
		"cutoff":    result.CutoffTime,
	}); err != nil {
		uc.logger.Warnw("accounts deleted but audit record failed", "error", err)
	}

	uc.logger.Infow("expired unverified accounts deleted",
		"deleted_count", result.DeletedCount,
		"usernames", names,
		"actor", actor.Label(),
	)
	return result, nil
}

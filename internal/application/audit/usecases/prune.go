package usecases

import (
	"context"
	"fmt"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

const pruneJobName = "audit_prune"

type PruneCommand struct {
	// RetentionDays overrides the configured window when positive.
	RetentionDays int
	// Force skips the once-per-day guard.
	Force bool
}

type PruneResult struct {
	DeletedCount int64  `json:"deleted_count"`
	CutoffDate   string `json:"cutoff_date"`
	Skipped      bool   `json:"skipped"`
}

type PruneAuditLogsUseCase struct {
	repo      audit.Repository
	guard     audit.RunGuard
	recorder  AuditRecorder
	clock     biztime.Clock
	retention int
	logger    logger.Interface
}

// NewPruneAuditLogsUseCase builds the pruner. guard may be nil, in which
// case every run proceeds.
func NewPruneAuditLogsUseCase(
	repo audit.Repository,
	guard audit.RunGuard,
	recorder AuditRecorder,
	clock biztime.Clock,
	lifecycle config.LifecycleConfig,
	logger logger.Interface,
) *PruneAuditLogsUseCase {
	return &PruneAuditLogsUseCase{
		repo:      repo,
		guard:     guard,
		recorder:  recorder,
		clock:     clock,
		retention: lifecycle.AuditRetention(),
		logger:    logger,
	}
}

// Execute deletes audit records older than the retention window and then
// audits itself. The self-record is written after the delete, so it
// survives the run that created it.
func (uc *PruneAuditLogsUseCase) Execute(ctx context.Context, cmd PruneCommand) (*PruneResult, error) {
	days := cmd.RetentionDays
	if days <= 0 {
		days = uc.retention
	}
	now := uc.clock.Now().UTC()
	cutoff := biztime.DaysAgo(now, days)
	result := &PruneResult{CutoffDate: biztime.FormatRFC3339(cutoff)}

	day := biztime.BusinessDate(now)
	claimed := false
	if !cmd.Force && uc.guard != nil {
		ok, err := uc.guard.Claim(ctx, pruneJobName, day)
		switch {
		case err != nil:
			uc.logger.Warnw("audit prune guard unavailable, running anyway", "day", day, "error", err)
		case !ok:
			uc.logger.Infow("audit prune already ran today", "day", day)
			result.Skipped = true
			return result, nil
		default:
			claimed = true
		}
	}

	count, err := uc.repo.CountBefore(ctx, cutoff)
	if err != nil {
		uc.releaseGuard(ctx, claimed, day)
		uc.logger.Errorw("failed to count prunable audit records", "cutoff", result.CutoffDate, "error", err)
		return nil, err
	}
	if count == 0 {
		uc.logger.Infow("no audit records to prune", "cutoff", result.CutoffDate, "retention_days", days)
		return result, nil
	}

	deleted, err := uc.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		uc.releaseGuard(ctx, claimed, day)
		uc.logger.Errorw("failed to prune audit records", "cutoff", result.CutoffDate, "error", err)
		return nil, err
	}
	result.DeletedCount = deleted

	desc := fmt.Sprintf("Pruned %d audit log records older than %d days (before %s)", deleted, days, result.CutoffDate)
	if err := uc.recorder.Record(ctx, authorization.SystemActor(), audit.ActionAuditLogPrune, desc, map[string]any{
		"deleted_count":  deleted,
		"retention_days": days,
		"cutoff":         result.CutoffDate,
	}); err != nil {
		uc.logger.Warnw("audit prune finished but its own record failed", "error", err)
	}

	uc.logger.Infow("audit records pruned", "deleted_count", deleted, "cutoff", result.CutoffDate)
	return result, nil
}

// releaseGuard gives back a claimed guard after a failed run so it can be
// retried the same day.
func (uc *PruneAuditLogsUseCase) releaseGuard(ctx context.Context, claimed bool, day string) {
	if !claimed {
		return
	}
	if err := uc.guard.Release(ctx, pruneJobName, day); err != nil {
		uc.logger.Warnw("failed to release audit prune guard", "day", day, "error", err)
	}
}

package usecases

import (
	"context"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type UnverifiedStatsResult struct {
	TotalUnverified        int64  `json:"total_unverified"`
	ExpiredReadyForCleanup int64  `json:"expired_ready_for_cleanup"`
	RecentUnverified       int64  `json:"recent_unverified"`
	CutoffTime             string `json:"cutoff_time"`
}

type GetUnverifiedStatsUseCase struct {
	repo   account.Repository
	window account.Window
	clock  biztime.Clock
	logger logger.Interface
}

// NewGetUnverifiedStatsUseCase creates a new get unverified stats use case.
func NewGetUnverifiedStatsUseCase(repo account.Repository, clock biztime.Clock, lifecycle config.LifecycleConfig, logger logger.Interface) *GetUnverifiedStatsUseCase {
	return &GetUnverifiedStatsUseCase{
		repo:   repo,
		window: account.NewWindow(lifecycle.VerificationTTL()),
		clock:  clock,
		logger: logger,
	}
}

// Execute counts unverified accounts against the current expiry cutoff.
func (uc *GetUnverifiedStatsUseCase) Execute(ctx context.Context) (*UnverifiedStatsResult, error) {
	cutoff := uc.window.Cutoff(uc.clock.Now())

	counts, err := uc.repo.CountUnverified(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to count unverified accounts", "error", err)
		return nil, err
	}

	return &UnverifiedStatsResult{
		TotalUnverified:        counts.Total,
		ExpiredReadyForCleanup: counts.Expired,
		RecentUnverified:       counts.Recent,
		CutoffTime:             biztime.FormatRFC3339(cutoff),
	}, nil
}

package usecases

import (
	"context"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/mapper"
)

type ListUnverifiedQuery struct {
	ExpiredOnly bool
}

type ListUnverifiedUseCase struct {
	repo   account.Repository
	window account.Window
	clock  biztime.Clock
	logger logger.Interface
}

// NewListUnverifiedUseCase creates a new list unverified use case.
func NewListUnverifiedUseCase(repo account.Repository, clock biztime.Clock, lifecycle config.LifecycleConfig, logger logger.Interface) *ListUnverifiedUseCase {
	return &ListUnverifiedUseCase{
		repo:   repo,
		window: account.NewWindow(lifecycle.VerificationTTL()),
		clock:  clock,
		logger: logger,
	}
}

// Execute lists unverified accounts with their derived lifecycle state.
// Protected accounts are listed and flagged; cleanup never removes them.
func (uc *ListUnverifiedUseCase) Execute(ctx context.Context, query ListUnverifiedQuery) ([]UnverifiedAccountDTO, error) {
	now := uc.clock.Now()

	var createdBefore *time.Time
	if query.ExpiredOnly {
		cutoff := uc.window.Cutoff(now)
		createdBefore = &cutoff
	}

	accounts, err := uc.repo.ListUnverified(ctx, createdBefore)
	if err != nil {
		uc.logger.Errorw("failed to list unverified accounts", "expired_only", query.ExpiredOnly, "error", err)
		return nil, err
	}

	return mapper.MapSlice(accounts, func(a *account.Account) UnverifiedAccountDTO {
		lc := uc.window.Describe(a.CreatedAt(), now)
		return UnverifiedAccountDTO{
			ID:                 a.ID(),
			Username:           a.Username(),
			Email:              a.Email(),
			Role:               a.Role().String(),
			CreatedAt:          biztime.FormatRFC3339(a.CreatedAt()),
			Status:             string(lc.Status),
			HoursSinceCreation: lc.HoursSinceCreation,
			ExpiresInHours:     lc.ExpiresInHours,
			Protected:          a.IsProtected(),
		}
	}), nil
}

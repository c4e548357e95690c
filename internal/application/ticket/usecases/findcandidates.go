package usecases

import (
	"context"
	"time"

	"github.com/inkwell-print/inkwell/internal/application/ticket/dto"
	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/mapper"
)

type FindAutoCloseCandidatesUseCase struct {
	repo       conversation.Repository
	inactivity time.Duration
	clock      biztime.Clock
	logger     logger.Interface
}

// NewFindAutoCloseCandidatesUseCase creates a new find auto-close candidates use case.
func NewFindAutoCloseCandidatesUseCase(repo conversation.Repository, clock biztime.Clock, lifecycle config.LifecycleConfig, logger logger.Interface) *FindAutoCloseCandidatesUseCase {
	return &FindAutoCloseCandidatesUseCase{
		repo:       repo,
		inactivity: lifecycle.TicketInactivity(),
		clock:      clock,
		logger:     logger,
	}
}

// Execute lists open conversations whose last message is an idle staff reply.
func (uc *FindAutoCloseCandidatesUseCase) Execute(ctx context.Context, anonymousOnly bool) ([]dto.CandidateDTO, error) {
	now := uc.clock.Now()
	candidates, err := uc.repo.FindAutoCloseCandidates(ctx, conversation.CandidateFilter{
		InactiveBefore: now.Add(-uc.inactivity),
		AnonymousOnly:  anonymousOnly,
	})
	if err != nil {
		uc.logger.Errorw("failed to find auto-close candidates", "anonymous_only", anonymousOnly, "error", err)
		return nil, err
	}

	return mapper.MapSlice(candidates, func(c conversation.Candidate) dto.CandidateDTO {
		return dto.ToCandidateDTO(c, now)
	}), nil
}

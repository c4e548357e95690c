package usecases

import (
	"context"

	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type RunDailyResult struct {
	ClosedCount     int `json:"closed_count"`
	AnonClosedCount int `json:"anon_closed_count"`
	FailedCount     int `json:"failed_count"`
}

type RunDailyUseCase struct {
	repo      conversation.Repository
	closer    *AutoCloseUseCase
	lifecycle config.LifecycleConfig
	clock     biztime.Clock
	logger    logger.Interface
}

// NewRunDailyUseCase creates the daily auto-close sweep on top of closer.
func NewRunDailyUseCase(repo conversation.Repository, closer *AutoCloseUseCase, clock biztime.Clock, lifecycle config.LifecycleConfig, logger logger.Interface) *RunDailyUseCase {
	return &RunDailyUseCase{
		repo:      repo,
		closer:    closer,
		lifecycle: lifecycle,
		clock:     clock,
		logger:    logger,
	}
}

// Execute runs the anonymous pass and then the general pass. Candidates
// from both passes may overlap; a conversation closed by the first no
// longer matches the second. ClosedCount covers both passes and
// AnonClosedCount is its anonymous share. One failing conversation never
// stops the others.
func (uc *RunDailyUseCase) Execute(ctx context.Context, actor authorization.Actor) (*RunDailyResult, error) {
	result := &RunDailyResult{}

	for _, anonymousOnly := range []bool{true, false} {
		candidates, err := uc.repo.FindAutoCloseCandidates(ctx, conversation.CandidateFilter{
			InactiveBefore: uc.clock.Now().Add(-uc.lifecycle.TicketInactivity()),
			AnonymousOnly:  anonymousOnly,
		})
		if err != nil {
			uc.logger.Errorw("failed to query auto-close candidates", "anonymous_only", anonymousOnly, "error", err)
			return result, err
		}

		for _, candidate := range candidates {
			closed, err := uc.closer.Execute(ctx, AutoCloseCommand{
				Actor:           actor,
				ConversationID:  candidate.ConversationID,
				RequireEligible: true,
			})
			if err != nil {
				result.FailedCount++
				uc.logger.Warnw("failed to auto-close conversation",
					"conversation_id", candidate.ConversationID,
					"error", err,
				)
				continue
			}
			if !closed.Closed {
				continue
			}
			result.ClosedCount++
			if closed.Anonymous {
				result.AnonClosedCount++
			}
		}
	}

	uc.logger.Infow("daily ticket auto-close finished",
		"closed_count", result.ClosedCount,
		"anon_closed_count", result.AnonClosedCount,
		"failed_count", result.FailedCount,
	)
	return result, nil
}

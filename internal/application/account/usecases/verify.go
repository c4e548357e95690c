package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type VerifyEmailCommand struct {
	Token     string
	IPAddress string
	UserAgent string
}

type VerifyEmailResult struct {
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
}

type VerifyEmailUseCase struct {
	repo     account.Repository
	recorder AuditRecorder
	window   account.Window
	clock    biztime.Clock
	logger   logger.Interface
}

// NewVerifyEmailUseCase creates a new verify email use case.
func NewVerifyEmailUseCase(repo account.Repository, recorder AuditRecorder, clock biztime.Clock, lifecycle config.LifecycleConfig, logger logger.Interface) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		repo:     repo,
		recorder: recorder,
		window:   account.NewWindow(lifecycle.VerificationTTL()),
		clock:    clock,
		logger:   logger,
	}
}

// Execute redeems a verification token. Tokens of accounts past their TTL
// are rejected even if cleanup has not removed the account yet.
func (uc *VerifyEmailUseCase) Execute(ctx context.Context, cmd VerifyEmailCommand) (*VerifyEmailResult, error) {
	if _, err := account.ParseToken(cmd.Token); err != nil {
		return nil, errors.NewValidationError(account.ErrInvalidToken.Error())
	}

	acc, err := uc.repo.GetByVerificationToken(ctx, cmd.Token)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("verification token not found")
		}
		uc.logger.Errorw("failed to look up verification token", "error", err)
		return nil, err
	}

	if err := acc.Verify(cmd.Token, uc.window, uc.clock.Now()); err != nil {
		switch {
		case stderrors.Is(err, account.ErrVerificationExpired), stderrors.Is(err, account.ErrAlreadyVerified):
			return nil, errors.NewInvalidStateError(err.Error())
		default:
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := uc.repo.Update(ctx, acc); err != nil {
		uc.logger.Errorw("failed to store verified account", "account_id", acc.ID(), "error", err)
		return nil, err
	}

	actor := authorization.NewUserActor(acc.ID(), acc.Username(), acc.Role())
	actor.IPAddress = cmd.IPAddress
	actor.UserAgent = cmd.UserAgent
	if err := uc.recorder.Record(ctx, actor, audit.ActionAccountVerified,
		fmt.Sprintf("Verified account %s", acc.Username()), nil); err != nil {
		uc.logger.Warnw("account verified but audit record failed", "account_id", acc.ID(), "error", err)
	}

	return &VerifyEmailResult{AccountID: acc.ID(), Username: acc.Username()}, nil
}

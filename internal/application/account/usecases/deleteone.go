package usecases

import (
	"context"
	"fmt"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type DeleteAccountCommand struct {
	Actor     authorization.Actor
	AccountID uint
}

type DeleteAccountResult struct {
	Account DeletedAccountDTO `json:"account"`
}

type DeleteAccountUseCase struct {
	repo     account.Repository
	tx       TxRunner
	recorder AuditRecorder
	logger   logger.Interface
}

// NewDeleteAccountUseCase creates a use case that deletes one unverified
// account and records the deletion in the same transaction.
func NewDeleteAccountUseCase(repo account.Repository, tx TxRunner, recorder AuditRecorder, logger logger.Interface) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute deletes one unverified account. Verified and protected accounts
// are refused with invalid_state.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, cmd DeleteAccountCommand) (*DeleteAccountResult, error) {
	if cmd.AccountID == 0 {
		return nil, errors.NewValidationError("account ID is required")
	}

	acc, err := uc.repo.GetByID(ctx, cmd.AccountID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to load account", "account_id", cmd.AccountID, "error", err)
		}
		return nil, err
	}
	if acc.IsVerified() {
		return nil, errors.NewInvalidStateError(account.ErrAlreadyVerified.Error(), acc.Username())
	}
	if acc.IsProtected() {
		return nil, errors.NewInvalidStateError(account.ErrProtectedRole.Error(), acc.Username())
	}

	// The audit row commits with the delete; a failed audit write alone
	// does not undo it.
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		removed, err := uc.repo.DeleteUnverified(ctx, acc.ID())
		if err != nil {
			uc.logger.Errorw("failed to delete account", "account_id", acc.ID(), "error", err)
			return err
		}
		if !removed {
			return errors.NewInvalidStateError("account was verified or removed concurrently", acc.Username())
		}

		desc := fmt.Sprintf("Deleted unverified account %s (%s)", acc.Username(), acc.Email())
		if err := uc.recorder.Record(ctx, cmd.Actor, audit.ActionUnverifiedManualDelete, desc, map[string]any{
			"account_id": acc.ID(),
			"username":   acc.Username(),
		}); err != nil {
			uc.logger.Warnw("account deleted but audit record failed", "account_id", acc.ID(), "error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("unverified account deleted", "account_id", acc.ID(), "actor", cmd.Actor.Label())
	return &DeleteAccountResult{Account: toDeletedDTO(acc)}, nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/domain/notification"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type RegisterCommand struct {
	Username  string
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

type RegisterResult struct {
	AccountID uint   `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	ExpiresAt string `json:"verification_expires_at"`
	EmailSent bool   `json:"email_sent"`
}

type RegisterUseCase struct {
	repo      account.Repository
	hasher    account.PasswordHasher
	sender    notification.Sender
	templates notification.Templates
	recorder  AuditRecorder
	verifyURL VerifyLinkBuilder
	window    account.Window
	clock     biztime.Clock
	logger    logger.Interface
}

// NewRegisterUseCase creates a new register use case.
func NewRegisterUseCase(
	repo account.Repository,
	hasher account.PasswordHasher,
	sender notification.Sender,
	templates notification.Templates,
	recorder AuditRecorder,
	verifyURL VerifyLinkBuilder,
	clock biztime.Clock,
	lifecycle config.LifecycleConfig,
	logger logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		repo:      repo,
		hasher:    hasher,
		sender:    sender,
		templates: templates,
		recorder:  recorder,
		verifyURL: verifyURL,
		window:    account.NewWindow(lifecycle.VerificationTTL()),
		clock:     clock,
		logger:    logger,
	}
}

// Execute creates an unverified customer account and mails its
// verification link. A mail failure does not undo the registration.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	if len(cmd.Password) < 8 {
		return nil, errors.NewValidationError("password must be at least 8 characters")
	}

	exists, err := uc.repo.ExistsByUsernameOrEmail(ctx,
		account.NormalizeUsername(cmd.Username), account.NormalizeEmail(cmd.Email))
	if err != nil {
		uc.logger.Errorw("failed to check existing account", "error", err)
		return nil, err
	}
	if exists {
		return nil, errors.NewConflictError("username or email is already registered")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		if errors.IsValidationError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to register account")
	}

	now := uc.clock.Now()
	acc, token, err := account.NewAccount(cmd.Username, cmd.Email, hash, authorization.RoleCustomer, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.repo.Create(ctx, acc); err != nil {
		uc.logger.Errorw("failed to create account", "username", acc.Username(), "error", err)
		return nil, err
	}

	actor := authorization.NewUserActor(acc.ID(), acc.Username(), acc.Role())
	actor.IPAddress = cmd.IPAddress
	actor.UserAgent = cmd.UserAgent
	if err := uc.recorder.Record(ctx, actor, audit.ActionAccountRegistered,
		fmt.Sprintf("Registered account %s", acc.Username()), nil); err != nil {
		uc.logger.Warnw("account registered but audit record failed", "account_id", acc.ID(), "error", err)
	}

	result := &RegisterResult{
		AccountID: acc.ID(),
		Username:  acc.Username(),
		Email:     acc.Email(),
		ExpiresAt: biztime.FormatRFC3339(acc.CreatedAt().Add(uc.window.TTL)),
	}

	mail, err := uc.templates.Verification(acc.Username(), uc.verifyURL(token.Value()), int(uc.window.TTL.Hours()))
	if err == nil {
		err = uc.sender.Send(ctx, acc.Email(), mail.Subject, mail.HTMLBody)
	}
	if err != nil {
		uc.logger.Warnw("verification email not sent",
			"account_id", acc.ID(),
			"error", errors.NewNotifierFailureError("failed to send verification email", err),
		)
	} else {
		result.EmailSent = true
	}

	uc.logger.Infow("account registered", "account_id", acc.ID(), "email_sent", result.EmailSent)
	return result, nil
}

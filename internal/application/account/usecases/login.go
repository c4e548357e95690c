package usecases

import (
	"context"

	"github.com/inkwell-print/inkwell/internal/domain/account"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type LoginCommand struct {
	Login    string
	Password string
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	AccountID   uint   `json:"account_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

type LoginUseCase struct {
	repo     account.Repository
	verifier account.PasswordVerifier
	issuer   TokenIssuer
	clock    biztime.Clock
	logger   logger.Interface
}

// NewLoginUseCase creates a new login use case. The clock stamps password
// hash upgrades.
func NewLoginUseCase(repo account.Repository, verifier account.PasswordVerifier, issuer TokenIssuer, clock biztime.Clock, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{
		repo:     repo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
		logger:   logger,
	}
}

// Execute authenticates by username or email. Unknown accounts and wrong
// passwords get the same answer; unverified accounts cannot sign in.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.Login == "" || cmd.Password == "" {
		return nil, errors.NewValidationError("login and password are required")
	}

	acc, err := uc.repo.GetByLogin(ctx, cmd.Login)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewUnauthorizedError("invalid credentials")
		}
		uc.logger.Errorw("failed to load account for login", "error", err)
		return nil, err
	}

	if err := uc.verifier.Verify(cmd.Password, acc.PasswordHash()); err != nil {
		uc.logger.Infow("login rejected", "account_id", acc.ID())
		return nil, errors.NewUnauthorizedError("invalid credentials")
	}
	if !acc.IsVerified() {
		return nil, errors.NewInvalidStateError("email address is not verified")
	}

	uc.upgradeHash(ctx, acc, cmd.Password)

	token, expiresIn, err := uc.issuer.Generate(acc.ID(), acc.Username(), acc.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "account_id", acc.ID(), "error", err)
		return nil, errors.NewInternalError("failed to sign in")
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		AccountID:   acc.ID(),
		Username:    acc.Username(),
		Role:        acc.Role().String(),
	}, nil
}

// upgradeHash rehashes the password when the stored hash predates the
// configured cost. Failures only cost a log line.
func (uc *LoginUseCase) upgradeHash(ctx context.Context, acc *account.Account, password string) {
	rehasher, ok := uc.verifier.(account.PasswordRehasher)
	if !ok || !rehasher.NeedsRehash(acc.PasswordHash()) {
		return
	}
	hash, err := rehasher.Hash(password)
	if err == nil {
		err = acc.ReplacePasswordHash(hash, uc.clock.Now())
	}
	if err == nil {
		err = uc.repo.Update(ctx, acc)
	}
	if err != nil {
		uc.logger.Warnw("failed to upgrade password hash", "account_id", acc.ID(), "error", err)
		return
	}
	uc.logger.Infow("password hash upgraded", "account_id", acc.ID())
}

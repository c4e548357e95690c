package account

import "errors"

var (
	ErrAlreadyVerified     = errors.New("account is already verified")
	ErrInvalidToken        = errors.New("invalid verification token")
	ErrVerificationExpired = errors.New("verification window has expired")
	ErrProtectedRole       = errors.New("account role is protected from cleanup")
)

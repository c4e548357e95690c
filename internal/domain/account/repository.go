package account

import (
	"context"
	"time"
)

// UnverifiedCounts aggregates unverified accounts around a cutoff.
type UnverifiedCounts struct {
	Total   int64
	Expired int64
	Recent  int64
}

// Repository is the store port for accounts. Implementations wrap store
// failures as store_unavailable and missing rows as not_found.
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id uint) (*Account, error)
	GetByVerificationToken(ctx context.Context, token string) (*Account, error)
	// GetByLogin finds an account by username or email.
	GetByLogin(ctx context.Context, login string) (*Account, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, account *Account) error

	// CountUnverified counts unverified accounts. Expired excludes protected
	// roles so it matches what DeleteExpired would remove.
	CountUnverified(ctx context.Context, cutoff time.Time) (UnverifiedCounts, error)

	// ListUnverified lists unverified accounts oldest first, optionally only
	// those created before createdBefore.
	ListUnverified(ctx context.Context, createdBefore *time.Time) ([]*Account, error)

	// ListReminderCandidates lists unprotected unverified accounts created in
	// (after, atOrBefore].
	ListReminderCandidates(ctx context.Context, after, atOrBefore time.Time) ([]*Account, error)

	// DeleteExpired removes every unprotected unverified account created
	// before cutoff and returns the rows it removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) ([]*Account, error)

	// DeleteUnverified removes one account only if it is still unverified.
	// It reports whether a row was removed.
	DeleteUnverified(ctx context.Context, id uint) (bool, error)
}

// PasswordHasher hashes registration passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

type PasswordVerifier interface {
	Verify(password, hash string) error
}

// PasswordRehasher is implemented by verifiers that can tell when a stored
// hash is out of date.
type PasswordRehasher interface {
	PasswordHasher
	NeedsRehash(hash string) bool
}

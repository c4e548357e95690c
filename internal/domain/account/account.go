package account

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-print/inkwell/internal/shared/authorization"
)

// Account is a customer or staff identity. It holds a verification token
// exactly while it is unverified.
type Account struct {
	id                uint
	username          string
	email             string
	passwordHash      string
	role              authorization.UserRole
	verified          bool
	verificationToken *string
	createdAt         time.Time
	updatedAt         time.Time
}

// NormalizeUsername returns the username in the form it is stored.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NormalizeEmail returns the email in the form it is stored. Emails are
// unique case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewAccount creates an unverified account and returns the verification
// token that must be mailed to the owner.
func NewAccount(username, email, passwordHash string, role authorization.UserRole, now time.Time) (*Account, *Token, error) {
	username = NormalizeUsername(username)
	email = NormalizeEmail(email)
	if username == "" {
		return nil, nil, fmt.Errorf("username is required")
	}
	if email == "" {
		return nil, nil, fmt.Errorf("email is required")
	}
	if passwordHash == "" {
		return nil, nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, nil, fmt.Errorf("invalid role %q", role)
	}

	token, err := GenerateToken()
	if err != nil {
		return nil, nil, err
	}
	value := token.Value()

	return &Account{
		username:          username,
		email:             email,
		passwordHash:      passwordHash,
		role:              role,
		verificationToken: &value,
		createdAt:         now.UTC(),
		updatedAt:         now.UTC(),
	}, token, nil
}

// ReconstructAccount rebuilds an account from persistence.
func ReconstructAccount(
	id uint,
	username, email, passwordHash string,
	role authorization.UserRole,
	verified bool,
	verificationToken *string,
	createdAt, updatedAt time.Time,
) (*Account, error) {
	if id == 0 {
		return nil, fmt.Errorf("account ID cannot be zero")
	}
	if verified && verificationToken != nil {
		return nil, fmt.Errorf("account %d is verified but still holds a token", id)
	}

	return &Account{
		id:                id,
		username:          username,
		email:             email,
		passwordHash:      passwordHash,
		role:              role,
		verified:          verified,
		verificationToken: verificationToken,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (a *Account) ID() uint                     { return a.id }
func (a *Account) Username() string             { return a.username }
func (a *Account) Email() string                { return a.email }
func (a *Account) PasswordHash() string         { return a.passwordHash }
func (a *Account) Role() authorization.UserRole { return a.role }
func (a *Account) IsVerified() bool             { return a.verified }
func (a *Account) VerificationToken() *string   { return a.verificationToken }
func (a *Account) CreatedAt() time.Time         { return a.createdAt }
func (a *Account) UpdatedAt() time.Time         { return a.updatedAt }

func (a *Account) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("account ID already set")
	}
	if id == 0 {
		return fmt.Errorf("account ID cannot be zero")
	}
	a.id = id
	return nil
}

// IsProtected reports whether automatic cleanup must skip this account.
func (a *Account) IsProtected() bool {
	return a.role.IsProtected()
}

// Verify redeems plainToken. A token whose account has outlived the
// verification window is refused even if the row has not been deleted yet.
func (a *Account) Verify(plainToken string, window Window, now time.Time) error {
	if a.verified {
		return ErrAlreadyVerified
	}
	if a.verificationToken == nil {
		return ErrInvalidToken
	}
	if window.IsExpired(a.createdAt, now) {
		return ErrVerificationExpired
	}

	token, err := ParseToken(plainToken)
	if err != nil || token.Value() != *a.verificationToken {
		return ErrInvalidToken
	}

	a.verified = true
	a.verificationToken = nil
	a.updatedAt = now.UTC()
	return nil
}

// ReplacePasswordHash swaps in a hash of the same password, e.g. after the
// configured bcrypt cost changed.
func (a *Account) ReplacePasswordHash(hash string, now time.Time) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	a.passwordHash = hash
	a.updatedAt = now.UTC()
	return nil
}

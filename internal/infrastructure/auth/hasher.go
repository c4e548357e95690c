package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

// maxPasswordBytes is bcrypt's input limit; longer passwords are refused
// rather than silently truncated.
const maxPasswordBytes = 72

type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost for a cost
// outside bcrypt's accepted range.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", errors.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Verify hides the bcrypt cause so a malformed hash and a wrong password
// look the same to the caller.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return fmt.Errorf("password does not match")
	}
	return nil
}

// NeedsRehash reports whether hash was produced with a different cost than
// the one configured now.
func (h *BcryptPasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.cost
}

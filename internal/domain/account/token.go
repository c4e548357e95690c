package account

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 32

// Token is a verification token. The value is mailed in the original
// verification email and again in reminders, so it is stored as issued.
type Token struct {
	value string
}

func GenerateToken() (*Token, error) {
	bytes := make([]byte, tokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	return &Token{value: hex.EncodeToString(bytes)}, nil
}

// ParseToken validates the shape of a token received from a link.
func ParseToken(value string) (*Token, error) {
	if len(value) != tokenBytes*2 {
		return nil, fmt.Errorf("token must be %d characters long", tokenBytes*2)
	}
	if _, err := hex.DecodeString(value); err != nil {
		return nil, fmt.Errorf("token must be a valid hexadecimal string")
	}
	return &Token{value: value}, nil
}

func (t *Token) Value() string { return t.value }

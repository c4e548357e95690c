package usecases

import (
	"context"
	"net/url"
	"strings"

	"github.com/inkwell-print/inkwell/internal/shared/authorization"
)

// AuditRecorder writes audit records on behalf of an actor.
type AuditRecorder interface {
	Record(ctx context.Context, actor authorization.Actor, action, description string, metadata map[string]any) error
}

// TxRunner runs fn in one database transaction. Repositories reached
// through the derived context join it.
type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// VerifyLinkBuilder turns a verification token into the link mailed to the customer.
type VerifyLinkBuilder func(token string) string

// NewVerifyLinkBuilder builds links against the public base URL.
func NewVerifyLinkBuilder(baseURL string) VerifyLinkBuilder {
	base := strings.TrimRight(baseURL, "/")
	return func(token string) string {
		return base + "/auth/verify-email?token=" + url.QueryEscape(token)
	}
}

// TokenIssuer signs access tokens for authenticated accounts.
type TokenIssuer interface {
	Generate(userID uint, username string, role authorization.UserRole) (string, int64, error)
}

package usecases

import (
	"context"

	"github.com/inkwell-print/inkwell/internal/shared/authorization"
)

type AuditRecorder interface {
	Record(ctx context.Context, actor authorization.Actor, action, description string, metadata map[string]any) error
}

// TextSanitizer strips markup from customer supplied text before it is stored.
type TextSanitizer interface {
	StripTags(input string) string
}

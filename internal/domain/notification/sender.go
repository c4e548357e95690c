package notification

import "context"

// Sender delivers one message to one address. A nil error means the
// transport accepted it.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Mail is a rendered message ready for a Sender.
type Mail struct {
	Subject  string
	HTMLBody string
}

// Templates renders the lifecycle notifications.
type Templates interface {
	VerificationReminder(username, verifyURL string, hoursLeft int) (Mail, error)
	Verification(username, verifyURL string, ttlHours int) (Mail, error)
	TicketAutoClosed(customerName, subject string) (Mail, error)
}

// Deduplicator suppresses repeat sends of the same notification key.
// Reserve reports false when the key is already held.
type Deduplicator interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

package email

import (
	"context"

	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// LogSender stands in for SMTP when no relay is configured. Messages are
// logged and reported as delivered.
type LogSender struct {
	logger logger.Interface
}

// NewLogSender creates a sender that only logs outgoing mail.
func NewLogSender(logger logger.Interface) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.logger.Infow("email not sent, smtp is not configured",
		"to", to,
		"subject", subject,
		"body_bytes", len(htmlBody),
	)
	return nil
}

package email

import (
	"github.com/inkwell-print/inkwell/internal/domain/notification"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// NewSender picks the SMTP sender when a relay host is configured and the
// log sender otherwise.
func NewSender(cfg config.EmailConfig, plain PlainTextRenderer, log logger.Interface) notification.Sender {
	if !cfg.IsConfigured() {
		log.Warnw("smtp_host is empty, outgoing email will only be logged")
		return NewLogSender(log)
	}
	s := NewSMTPSender(SMTPConfigFrom(cfg), plain)
	log.Infow("email sender initialized", "relay", s.String(), "from", cfg.FromAddress)
	return s
}

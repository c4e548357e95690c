package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/inkwell-print/inkwell/internal/shared/config"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// SMTPConfigFrom converts the email section of the configuration.
func SMTPConfigFrom(cfg config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

// PlainTextRenderer turns an HTML body into its text/plain alternative.
type PlainTextRenderer interface {
	StripTags(content string) string
}

// SMTPSender delivers mail through one SMTP relay. Each Send dials anew;
// the jobs send at most a few hundred messages per run.
type SMTPSender struct {
	config SMTPConfig
	dialer *gomail.Dialer
	plain  PlainTextRenderer
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(config SMTPConfig, plain PlainTextRenderer) *SMTPSender {
	return &SMTPSender{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		plain:  plain,
	}
}

// Send delivers one message with an HTML body and a plain-text alternative.
func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.dialer.DialAndSend(s.message(to, subject, htmlBody))
}

func (s *SMTPSender) message(to, subject, htmlBody string) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	if s.plain != nil {
		m.SetBody("text/plain", s.plain.StripTags(htmlBody))
		m.AddAlternative("text/html", htmlBody)
	} else {
		m.SetBody("text/html", htmlBody)
	}
	return m
}

func (s *SMTPSender) String() string {
	return fmt.Sprintf("smtp://%s:%d", s.config.Host, s.config.Port)
}

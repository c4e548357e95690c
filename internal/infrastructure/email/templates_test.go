package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/services/markdown"
)

func TestTemplates_VerificationReminder(t *testing.T) {
	tpl := NewTemplates(markdown.NewMarkdownService())

	tests := []struct {
		name      string
		hoursLeft int
		subject   string
	}{
		{"two hours", 2, "Verify your email: your account expires in 2 hours"},
		{"last hour", 1, "Verify your email: your account expires in less than an hour"},
		{"already due", 0, "Verify your email: your account expires in less than an hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail, err := tpl.VerificationReminder("juan dela cruz", "https://inkwell.test/auth/verify-email?token=abc", tt.hoursLeft)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, mail.Subject)
			assert.Contains(t, mail.HTMLBody, "Juan Dela Cruz")
			assert.Contains(t, mail.HTMLBody, `href="https://inkwell.test/auth/verify-email?token=abc"`)
		})
	}
}

func TestTemplates_TicketAutoClosedSanitizesSubject(t *testing.T) {
	tpl := NewTemplates(markdown.NewMarkdownService())

	mail, err := tpl.TicketAutoClosed("", `Flyers <img src=x onerror="alert(1)">`)
	require.NoError(t, err)
	assert.Equal(t, "Your support ticket was closed", mail.Subject)
	assert.Contains(t, mail.HTMLBody, "Hi there")
	assert.NotContains(t, mail.HTMLBody, "onerror")
}

func TestTemplates_Verification(t *testing.T) {
	tpl := NewTemplates(markdown.NewMarkdownService())

	mail, err := tpl.Verification("ana", "https://inkwell.test/v", 24)
	require.NoError(t, err)
	assert.Contains(t, mail.HTMLBody, "<strong>24 hours</strong>")
}

func TestNewSender_FallsBackToLog(t *testing.T) {
	s := NewSender(config.EmailConfig{}, nil, logger.NewNop())
	_, ok := s.(*LogSender)
	require.True(t, ok)
	assert.NoError(t, s.Send(context.Background(), "a@example.com", "hi", "<p>hi</p>"))

	smtp := NewSender(config.EmailConfig{SMTPHost: "mail.example.com", SMTPPort: 587}, markdown.NewMarkdownService(), logger.NewNop())
	_, ok = smtp.(*SMTPSender)
	assert.True(t, ok)
}

func TestSMTPSender_RespectsCanceledContext(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "127.0.0.1", Port: 1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, "a@example.com", "hi", "<p>hi</p>"), context.Canceled)
}

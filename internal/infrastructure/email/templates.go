package email

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/inkwell-print/inkwell/internal/domain/notification"
)

// MarkdownRenderer converts a markdown body into sanitized HTML.
type MarkdownRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

const (
	verificationBody = `## Welcome to Inkwell, {{.Name}}

Please confirm your email address so we can start printing for you:

[Verify my email]({{.URL}})

This link expires in **{{.Hours}} hours**. Accounts that are not verified by then are removed.`

	reminderBody = `## {{.Name}}, your Inkwell account is almost gone

You signed up but have not verified your email yet. Your account will be
deleted in **{{.Left}}** unless you confirm it:

[Verify my email]({{.URL}})

If you did not sign up, ignore this message and nothing else will happen.`

	ticketClosedBody = `## Hi {{.Name}}

Your support ticket **{{.Subject}}** was closed because we did not hear back
from you for 7 days after our last reply.

If you still need help, just open a new ticket from your account page.`
)

// Templates renders the lifecycle emails. Bodies are markdown rendered to
// sanitized HTML so customer supplied values cannot inject markup.
type Templates struct {
	renderer     MarkdownRenderer
	caser        cases.Caser
	verification *template.Template
	reminder     *template.Template
	ticketClosed *template.Template
}

// NewTemplates parses the built-in templates.
func NewTemplates(renderer MarkdownRenderer) *Templates {
	return &Templates{
		renderer:     renderer,
		caser:        cases.Title(language.English),
		verification: template.Must(template.New("verification").Parse(verificationBody)),
		reminder:     template.Must(template.New("reminder").Parse(reminderBody)),
		ticketClosed: template.Must(template.New("ticket_closed").Parse(ticketClosedBody)),
	}
}

// Verification renders the mail sent right after registration.
func (t *Templates) Verification(username, verifyURL string, ttlHours int) (notification.Mail, error) {
	return t.render("Verify your Inkwell email address", t.verification, map[string]any{
		"Name":  t.name(username),
		"URL":   verifyURL,
		"Hours": ttlHours,
	})
}

// VerificationReminder words the subject by how many hours remain.
func (t *Templates) VerificationReminder(username, verifyURL string, hoursLeft int) (notification.Mail, error) {
	left := hoursPhrase(hoursLeft)
	return t.render(fmt.Sprintf("Verify your email: your account expires in %s", left), t.reminder, map[string]any{
		"Name": t.name(username),
		"URL":  verifyURL,
		"Left": left,
	})
}

// TicketAutoClosed renders the mail sent when a ticket is closed for
// inactivity.
func (t *Templates) TicketAutoClosed(customerName, subject string) (notification.Mail, error) {
	return t.render("Your support ticket was closed", t.ticketClosed, map[string]any{
		"Name":    t.name(customerName),
		"Subject": subject,
	})
}

func (t *Templates) render(subject string, tmpl *template.Template, data map[string]any) (notification.Mail, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return notification.Mail{}, fmt.Errorf("failed to execute %s template: %w", tmpl.Name(), err)
	}
	html, err := t.renderer.ToHTMLSanitized(buf.String())
	if err != nil {
		return notification.Mail{}, err
	}
	return notification.Mail{Subject: subject, HTMLBody: html}, nil
}

func (t *Templates) name(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "there"
	}
	return t.caser.String(raw)
}

func hoursPhrase(hours int) string {
	switch {
	case hours <= 1:
		return "less than an hour"
	default:
		return fmt.Sprintf("%d hours", hours)
	}
}

package maintenance

import "github.com/inkwell-print/inkwell/internal/domain/notification"

type stubTemplates struct{}

func (stubTemplates) VerificationReminder(username, verifyURL string, hoursLeft int) (notification.Mail, error) {
	return notification.Mail{Subject: "Reminder", HTMLBody: verifyURL}, nil
}

func (stubTemplates) Verification(username, verifyURL string, ttlHours int) (notification.Mail, error) {
	return notification.Mail{Subject: "Verify", HTMLBody: verifyURL}, nil
}

func (stubTemplates) TicketAutoClosed(customerName, subject string) (notification.Mail, error) {
	return notification.Mail{Subject: "Closed", HTMLBody: subject}, nil
}

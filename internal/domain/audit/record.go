package audit

import (
	"fmt"
	"time"
)

// Action tags written to audit_logs.action.
const (
	ActionUnverifiedCleanup       = "unverified_cleanup"
	ActionUnverifiedManualDelete  = "unverified_manual_delete"
	ActionUnverifiedManualCleanup = "unverified_manual_cleanup"
	ActionVerificationReminder    = "verification_reminder"
	ActionTicketAutoClose         = "ticket_auto_close"
	ActionAuditLogPrune           = "audit_log_prune"
	ActionAccountRegistered       = "account_registered"
	ActionAccountVerified         = "account_verified"
)

// Record is an append-only audit entry. A nil UserID means the system.
type Record struct {
	ID          uint
	UserID      *uint
	Action      string
	Description string
	IPAddress   string
	UserAgent   string
	Metadata    map[string]any
	CreatedAt   time.Time
}

func NewRecord(userID *uint, action, description string, createdAt time.Time) (*Record, error) {
	if action == "" {
		return nil, fmt.Errorf("audit action is required")
	}
	if description == "" {
		return nil, fmt.Errorf("audit description is required")
	}
	return &Record{
		UserID:      userID,
		Action:      action,
		Description: description,
		CreatedAt:   createdAt.UTC(),
	}, nil
}

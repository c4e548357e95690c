package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/audit"
	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/domain/notification"
	"github.com/inkwell-print/inkwell/internal/domain/shared/events"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type AutoCloseCommand struct {
	Actor          authorization.Actor
	ConversationID string
	// RequireEligible refuses conversations that have not been inactive long
	// enough. Scheduled runs set it; an administrator may close early.
	RequireEligible bool
}

type AutoCloseResult struct {
	ConversationID string `json:"conversation_id"`
	Closed         bool   `json:"closed"`
	Anonymous      bool   `json:"anonymous"`
	Notified       bool   `json:"notified"`
}

type AutoCloseUseCase struct {
	repo       conversation.Repository
	publisher  events.Publisher
	sender     notification.Sender
	templates  notification.Templates
	recorder   AuditRecorder
	inactivity time.Duration
	clock      biztime.Clock
	logger     logger.Interface
}

// NewAutoCloseUseCase builds the closer. publisher and sender may be nil.
func NewAutoCloseUseCase(
	repo conversation.Repository,
	publisher events.Publisher,
	sender notification.Sender,
	templates notification.Templates,
	recorder AuditRecorder,
	clock biztime.Clock,
	lifecycle config.LifecycleConfig,
	logger logger.Interface,
) *AutoCloseUseCase {
	return &AutoCloseUseCase{
		repo:       repo,
		publisher:  publisher,
		sender:     sender,
		templates:  templates,
		recorder:   recorder,
		inactivity: lifecycle.TicketInactivity(),
		clock:      clock,
		logger:     logger,
	}
}

// Execute closes one conversation. Closing an already solved conversation
// is a no-op reported as Closed=false.
func (uc *AutoCloseUseCase) Execute(ctx context.Context, cmd AutoCloseCommand) (*AutoCloseResult, error) {
	if cmd.ConversationID == "" {
		return nil, errors.NewValidationError("conversation ID is required")
	}

	c, err := uc.repo.GetByConversationID(ctx, cmd.ConversationID)
	if err != nil {
		if !errors.IsNotFoundError(err) {
			uc.logger.Errorw("failed to load conversation", "conversation_id", cmd.ConversationID, "error", err)
		}
		return nil, err
	}

	result := &AutoCloseResult{ConversationID: c.ConversationID(), Anonymous: c.IsAnonymous()}
	if c.Status().IsTerminal() {
		return result, nil
	}

	now := uc.clock.Now()
	if cmd.RequireEligible && !c.IsAutoCloseEligible(now.Add(-uc.inactivity)) {
		return nil, errors.NewInvalidStateError(conversation.ErrNotEligible.Error(), c.ConversationID())
	}

	notice, ok := c.Close(conversation.ReasonAutoClose, conversation.AutoCloseNotice, now)
	if !ok {
		return result, nil
	}

	closed, err := uc.repo.Close(ctx, c, notice)
	if err != nil {
		uc.logger.Errorw("failed to close conversation", "conversation_id", c.ConversationID(), "error", err)
		return nil, err
	}
	if !closed {
		uc.logger.Infow("conversation already closed elsewhere", "conversation_id", c.ConversationID())
		return result, nil
	}
	result.Closed = true

	uc.publish(ctx, c)
	result.Notified = uc.notify(ctx, c)

	desc := fmt.Sprintf("Auto-closed conversation %s after %d days without a customer reply",
		c.ConversationID(), int(uc.inactivity.Hours()/24))
	if err := uc.recorder.Record(ctx, cmd.Actor, audit.ActionTicketAutoClose, desc, map[string]any{
		"conversation_id": c.ConversationID(),
		"anonymous":       c.IsAnonymous(),
	}); err != nil {
		uc.logger.Warnw("conversation closed but audit record failed", "conversation_id", c.ConversationID(), "error", err)
	}

	uc.logger.Infow("conversation auto-closed",
		"conversation_id", c.ConversationID(),
		"anonymous", c.IsAnonymous(),
		"actor", cmd.Actor.Label(),
	)
	return result, nil
}

// publish announces the status change. Failures are logged only.
func (uc *AutoCloseUseCase) publish(ctx context.Context, c *conversation.Conversation) {
	for _, evt := range c.GetEvents() {
		domainEvent, ok := evt.(events.DomainEvent)
		if !ok || uc.publisher == nil {
			continue
		}
		if err := uc.publisher.Publish(ctx, domainEvent); err != nil {
			uc.logger.Warnw("failed to publish event",
				"event_type", domainEvent.GetEventType(),
				"conversation_id", c.ConversationID(),
				"error", err,
			)
		}
	}
}

// notify emails the customer and reports whether the mail went out.
// Conversations without an address are skipped.
func (uc *AutoCloseUseCase) notify(ctx context.Context, c *conversation.Conversation) bool {
	if uc.sender == nil || uc.templates == nil || c.CustomerEmail() == "" {
		return false
	}

	mail, err := uc.templates.TicketAutoClosed(c.CustomerName(), c.Subject())
	if err == nil {
		err = uc.sender.Send(ctx, c.CustomerEmail(), mail.Subject, mail.HTMLBody)
	}
	if err != nil {
		uc.logger.Warnw("auto-close email not sent",
			"conversation_id", c.ConversationID(),
			"error", errors.NewNotifierFailureError("failed to send auto-close email", err),
		)
		return false
	}
	return true
}

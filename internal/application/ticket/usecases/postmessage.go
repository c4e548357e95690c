package usecases

import (
	"context"
	stderrors "errors"

	"github.com/inkwell-print/inkwell/internal/application/ticket/dto"
	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type PostMessageCommand struct {
	Actor          authorization.Actor
	ConversationID string
	Body           string
}

type PostMessageUseCase struct {
	repo      conversation.Repository
	sanitizer TextSanitizer
	clock     biztime.Clock
	logger    logger.Interface
}

// NewPostMessageUseCase creates a new post message use case.
func NewPostMessageUseCase(repo conversation.Repository, sanitizer TextSanitizer, clock biztime.Clock, logger logger.Interface) *PostMessageUseCase {
	return &PostMessageUseCase{
		repo:      repo,
		sanitizer: sanitizer,
		clock:     clock,
		logger:    logger,
	}
}

// Execute appends a reply. Staff replies restart the inactivity clock that
// auto-close watches; a customer reply stops it. Solved conversations refuse
// new messages with invalid_state.
func (uc *PostMessageUseCase) Execute(ctx context.Context, cmd PostMessageCommand) (*dto.MessageDTO, error) {
	if cmd.ConversationID == "" {
		return nil, errors.NewValidationError("conversation ID is required")
	}

	c, err := uc.repo.GetByConversationID(ctx, cmd.ConversationID)
	if err != nil {
		return nil, err
	}

	isAdmin := cmd.Actor.Role.IsAdmin()
	sender := cmd.Actor.Username
	if !isAdmin || sender == "" {
		sender = c.CustomerName()
	}

	msg, err := c.AppendMessage(sender, isAdmin, uc.sanitizer.StripTags(cmd.Body), uc.clock.Now())
	if err != nil {
		if stderrors.Is(err, conversation.ErrConversationSolved) {
			return nil, errors.NewInvalidStateError(err.Error(), cmd.ConversationID)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.AppendMessage(ctx, c, msg); err != nil {
		if !errors.IsInvalidStateError(err) {
			uc.logger.Errorw("failed to store message", "conversation_id", cmd.ConversationID, "error", err)
		}
		return nil, err
	}

	uc.logger.Debugw("message posted", "conversation_id", cmd.ConversationID, "is_admin", isAdmin)
	result := dto.ToMessageDTO(msg)
	return &result, nil
}

package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/inkwell-print/inkwell/internal/application/ticket/dto"
	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

type OpenConversationCommand struct {
	Actor         authorization.Actor
	CustomerName  string
	CustomerEmail string
	Subject       string
	Body          string
	Anonymous     bool
}

type OpenConversationResult struct {
	Conversation dto.ConversationDTO `json:"conversation"`
	Message      dto.MessageDTO      `json:"message"`
}

type OpenConversationUseCase struct {
	repo      conversation.Repository
	sanitizer TextSanitizer
	marker    string
	clock     biztime.Clock
	logger    logger.Interface
}

// NewOpenConversationUseCase creates a new open conversation use case.
func NewOpenConversationUseCase(
	repo conversation.Repository,
	sanitizer TextSanitizer,
	clock biztime.Clock,
	lifecycle config.LifecycleConfig,
	logger logger.Interface,
) *OpenConversationUseCase {
	return &OpenConversationUseCase{
		repo:      repo,
		sanitizer: sanitizer,
		marker:    lifecycle.Marker(),
		clock:     clock,
		logger:    logger,
	}
}

// Execute creates a conversation with its first customer message.
func (uc *OpenConversationUseCase) Execute(ctx context.Context, cmd OpenConversationCommand) (*OpenConversationResult, error) {
	name := cmd.CustomerName
	if name == "" && !cmd.Actor.IsSystem() && !cmd.Anonymous {
		name = cmd.Actor.Username
	}

	c, first, err := conversation.NewConversation(
		uuid.NewString(),
		uc.sanitizer.StripTags(name),
		cmd.CustomerEmail,
		uc.sanitizer.StripTags(cmd.Subject),
		uc.sanitizer.StripTags(cmd.Body),
		cmd.Anonymous,
		uc.marker,
		uc.clock.Now(),
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Create(ctx, c, first); err != nil {
		uc.logger.Errorw("failed to create conversation", "error", err)
		return nil, err
	}

	uc.logger.Infow("conversation opened",
		"conversation_id", c.ConversationID(),
		"anonymous", c.IsAnonymous(),
	)
	return &OpenConversationResult{
		Conversation: dto.ToConversationDTO(c),
		Message:      dto.ToMessageDTO(first),
	}, nil
}

package mappers

import (
	"fmt"

	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/mapper"
)

type ConversationMapper interface {
	ToEntity(model *models.SupportConversationModel) (*conversation.Conversation, error)
	ToModel(entity *conversation.Conversation) *models.SupportConversationModel
	MessageToModel(msg *conversation.Message) *models.SupportMessageModel
	MessagesToEntities(rows []*models.SupportMessageModel) []*conversation.Message
}

type ConversationMapperImpl struct{}

// NewConversationMapper creates a new conversation mapper.
func NewConversationMapper() ConversationMapper {
	return &ConversationMapperImpl{}
}

// ToEntity converts a persistence model to a domain entity.
func (m *ConversationMapperImpl) ToEntity(model *models.SupportConversationModel) (*conversation.Conversation, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := conversation.ReconstructConversation(
		model.ID,
		model.ConversationID,
		model.CustomerName,
		model.CustomerEmail,
		model.Subject,
		model.Anonymous,
		conversation.Status(model.Status),
		model.LastMessageAt.UTC(),
		model.LastMessageIsAdmin,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct conversation entity: %w", err)
	}
	return entity, nil
}

// ToModel converts a domain entity to a persistence model.
func (m *ConversationMapperImpl) ToModel(entity *conversation.Conversation) *models.SupportConversationModel {
	return &models.SupportConversationModel{
		ID:                 entity.ID(),
		ConversationID:     entity.ConversationID(),
		CustomerName:       entity.CustomerName(),
		CustomerEmail:      entity.CustomerEmail(),
		Subject:            entity.Subject(),
		Anonymous:          entity.IsAnonymous(),
		Status:             entity.Status().String(),
		LastMessageAt:      entity.LastMessageAt(),
		LastMessageIsAdmin: entity.LastMessageIsAdmin(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

// MessageToModel converts a message, copying the conversation fields every
// message row keeps.
func (m *ConversationMapperImpl) MessageToModel(msg *conversation.Message) *models.SupportMessageModel {
	return &models.SupportMessageModel{
		ID:                 msg.ID,
		ConversationID:     msg.ConversationID,
		SenderName:         msg.SenderName,
		IsAdmin:            msg.IsAdmin,
		Message:            msg.Body,
		ConversationStatus: msg.ConversationStatus.String(),
		CustomerName:       msg.CustomerName,
		CustomerEmail:      msg.CustomerEmail,
		Subject:            msg.Subject,
		CreatedAt:          msg.CreatedAt,
	}
}

func (m *ConversationMapperImpl) MessagesToEntities(rows []*models.SupportMessageModel) []*conversation.Message {
	return mapper.MapSlice(rows, func(r *models.SupportMessageModel) *conversation.Message {
		return &conversation.Message{
			ID:                 r.ID,
			ConversationID:     r.ConversationID,
			SenderName:         r.SenderName,
			IsAdmin:            r.IsAdmin,
			Body:               r.Message,
			ConversationStatus: conversation.Status(r.ConversationStatus),
			CustomerName:       r.CustomerName,
			CustomerEmail:      r.CustomerEmail,
			Subject:            r.Subject,
			CreatedAt:          r.CreatedAt.UTC(),
		}
	})
}

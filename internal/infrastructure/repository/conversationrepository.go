package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/mappers"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	db "github.com/inkwell-print/inkwell/internal/shared/db"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

type ConversationRepository struct {
	db     *gorm.DB
	mapper mappers.ConversationMapper
}

// NewConversationRepository creates a new conversation repository.
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		mapper: mappers.NewConversationMapper(),
	}
}

// Create inserts the conversation and its first message in one transaction.
func (r *ConversationRepository) Create(ctx context.Context, c *conversation.Conversation, first *conversation.Message) error {
	model := r.mapper.ToModel(c)
	msg := r.mapper.MessageToModel(first)

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return tx.Create(msg).Error
	})
	if err != nil {
		return errors.NewStoreUnavailableError("failed to create conversation", err)
	}

	first.ID = msg.ID
	return c.SetID(model.ID)
}

// GetByConversationID retrieves a conversation by its public ID.
func (r *ConversationRepository) GetByConversationID(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
	var model models.SupportConversationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("conversation_id = ?", conversationID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("conversation not found", conversationID)
		}
		return nil, errors.NewStoreUnavailableError("failed to find conversation", err)
	}
	return r.mapper.ToEntity(&model)
}

// ListMessages returns the messages of a conversation, oldest first.
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]*conversation.Message, error) {
	var rows []*models.SupportMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.NewStoreUnavailableError("failed to list messages", err)
	}
	return r.mapper.MessagesToEntities(rows), nil
}

// AppendMessage refuses to write when the conversation was solved after it
// was loaded.
func (r *ConversationRepository) AppendMessage(ctx context.Context, c *conversation.Conversation, msg *conversation.Message) error {
	row := r.mapper.MessageToModel(msg)

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SupportConversationModel{}).
			Where("conversation_id = ? AND status = ?", c.ConversationID(), conversation.StatusOpen.String()).
			Updates(derivedFields(c))
		if result.Error != nil {
			return errors.NewStoreUnavailableError("failed to update conversation", result.Error)
		}
		if result.RowsAffected == 0 {
			return errors.NewInvalidStateError("conversation is no longer open", c.ConversationID())
		}
		if err := tx.Create(row).Error; err != nil {
			return errors.NewStoreUnavailableError("failed to store message", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	msg.ID = row.ID
	return nil
}

// FindAutoCloseCandidates queries the materialized conversation fields.
func (r *ConversationRepository) FindAutoCloseCandidates(ctx context.Context, filter conversation.CandidateFilter) ([]conversation.Candidate, error) {
	var rows []models.SupportConversationModel
	query := db.GetTxFromContext(ctx, r.db).
		Select("conversation_id", "last_message_at", "subject", "anonymous").
		Where("status = ? AND last_message_is_admin = ? AND last_message_at < ?",
			conversation.StatusOpen.String(), true, filter.InactiveBefore.UTC())
	if filter.AnonymousOnly {
		query = query.Where("anonymous = ?", true)
	}

	if err := query.Order("last_message_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, errors.NewStoreUnavailableError("failed to query auto-close candidates", err)
	}

	candidates := make([]conversation.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, conversation.Candidate{
			ConversationID: row.ConversationID,
			LastMessageAt:  row.LastMessageAt.UTC(),
			Subject:        row.Subject,
			Anonymous:      row.Anonymous,
		})
	}
	return candidates, nil
}

// Close marks the conversation solved, rewrites the status on its message
// rows and appends notice, all in one transaction.
func (r *ConversationRepository) Close(ctx context.Context, c *conversation.Conversation, notice *conversation.Message) (bool, error) {
	row := r.mapper.MessageToModel(notice)
	closed := false

	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		fields := derivedFields(c)
		fields["status"] = c.Status().String()

		result := tx.Model(&models.SupportConversationModel{}).
			Where("conversation_id = ? AND status = ?", c.ConversationID(), conversation.StatusOpen.String()).
			Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Model(&models.SupportMessageModel{}).
			Where("conversation_id = ?", c.ConversationID()).
			Update("conversation_status", c.Status().String()).Error; err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		closed = true
		return nil
	})
	if err != nil {
		return false, errors.NewStoreUnavailableError("failed to close conversation", err)
	}

	if closed {
		notice.ID = row.ID
	}
	return closed, nil
}

func derivedFields(c *conversation.Conversation) map[string]interface{} {
	return map[string]interface{}{
		"last_message_at":       c.LastMessageAt(),
		"last_message_is_admin": c.LastMessageIsAdmin(),
		"updated_at":            timeOrNow(c.UpdatedAt()),
	}
}

func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

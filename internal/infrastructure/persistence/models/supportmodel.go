package models

import (
	"time"

	"github.com/inkwell-print/inkwell/internal/shared/constants"
)

// SupportConversationModel holds the materialized state of a ticket.
type SupportConversationModel struct {
	ID                 uint      `gorm:"primaryKey"`
	ConversationID     string    `gorm:"uniqueIndex;size:64;not null"`
	CustomerName       string    `gorm:"size:100;not null"`
	CustomerEmail      string    `gorm:"size:255"`
	Subject            string    `gorm:"size:200;not null"`
	Anonymous          bool      `gorm:"not null;default:false;index"`
	Status             string    `gorm:"size:20;not null;index:idx_conv_autoclose,priority:1"`
	LastMessageAt      time.Time `gorm:"not null;index:idx_conv_autoclose,priority:3"`
	LastMessageIsAdmin bool      `gorm:"not null;default:false;index:idx_conv_autoclose,priority:2"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM.
func (SupportConversationModel) TableName() string {
	return constants.TableSupportConversations
}

type SupportMessageModel struct {
	ID                 uint      `gorm:"primaryKey"`
	ConversationID     string    `gorm:"size:64;not null;index:idx_msg_conv_created,priority:1"`
	SenderName         string    `gorm:"size:100;not null"`
	IsAdmin            bool      `gorm:"not null;default:false"`
	Message            string    `gorm:"type:text;not null"`
	ConversationStatus string    `gorm:"size:20;not null"`
	CustomerName       string    `gorm:"size:100"`
	CustomerEmail      string    `gorm:"size:255"`
	Subject            string    `gorm:"size:200"`
	CreatedAt          time.Time `gorm:"not null;index:idx_msg_conv_created,priority:2"`
}

func (SupportMessageModel) TableName() string {
	return constants.TableSupportMessages
}

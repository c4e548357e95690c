package models

import (
	"time"

	"github.com/inkwell-print/inkwell/internal/shared/constants"
)

type AccountModel struct {
	ID                uint      `gorm:"primaryKey"`
	Username          string    `gorm:"uniqueIndex;size:64;not null"`
	Email             string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string    `gorm:"size:255;not null"`
	Role              string    `gorm:"size:20;not null;default:customer"`
	IsVerified        bool      `gorm:"not null;default:false;index:idx_users_unverified,priority:1"`
	VerificationToken *string   `gorm:"size:64;index"`
	CreatedAt         time.Time `gorm:"not null;index:idx_users_unverified,priority:2"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM.
func (AccountModel) TableName() string {
	return constants.TableUsers
}

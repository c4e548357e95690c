package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/inkwell-print/inkwell/internal/shared/constants"
)

type AuditLogModel struct {
	ID          uint           `gorm:"primaryKey"`
	UserID      *uint          `gorm:"index"`
	Action      string         `gorm:"size:64;not null;index"`
	Description string         `gorm:"type:text;not null"`
	IPAddress   string         `gorm:"size:45"`
	UserAgent   string         `gorm:"size:255"`
	Metadata    datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time      `gorm:"not null;index"`
}

// TableName specifies the table name for GORM.
func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}

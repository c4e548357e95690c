package db

import (
	"time"

	"gorm.io/gorm"
)

// CreatedBefore keeps rows whose created_at is strictly before cutoff.
//
//	db.Model(&models.AuditLogModel{}).Scopes(db.CreatedBefore(cutoff)).Count(&n)
func CreatedBefore(cutoff time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at < ?", cutoff)
	}
}

// CreatedAtOrAfter keeps rows whose created_at is at or after from.
func CreatedAtOrAfter(from time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at >= ?", from)
	}
}

// Unverified keeps accounts still holding a verification token.
func Unverified() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_verified = ? AND verification_token IS NOT NULL", false)
	}
}

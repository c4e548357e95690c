// Package models holds the gorm row types.
package models

// All returns every model, in creation order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&AccountModel{},
		&SupportConversationModel{},
		&SupportMessageModel{},
		&AuditLogModel{},
	}
}

package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPageSize = 50
	MaxPageSize     = 500

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyUserRole = "user_role"

	// Database table names
	TableUsers                = "users"
	TableSupportConversations = "support_conversations"
	TableSupportMessages      = "support_messages"
	TableAuditLogs            = "audit_logs"

	// SystemSenderName authors synthetic support messages.
	SystemSenderName = "System"
)

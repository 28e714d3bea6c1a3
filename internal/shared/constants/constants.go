package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXAdminKey     = "X-Admin-Key"
	HeaderRetryAfter    = "Retry-After"

	// Context keys
	ContextKeyIdentityID = "identity_id"
	ContextKeySessionID  = "session_id"

	// Database table names
	TableIdentities  = "identities"
	TableSessions    = "sessions"
	TableQuotaStates = "quota_states"
	TableUsageEvents = "usage_events"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)

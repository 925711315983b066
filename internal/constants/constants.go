package constants

// Session and context keys
const (
	SessionCookieName = "nexus_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxUsernameLength = 80
	MaxTitleLength    = 100
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

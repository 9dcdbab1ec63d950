package constants

const (
	// ContextKeyUserID is used both as the session key and the gin context key for the logged-in user.
	ContextKeyUserID = "user_id"
	// ContextKeyRequestID holds the request id stamped by middleware.RequestID.
	ContextKeyRequestID = "request_id"
	// ContextKeyPrincipal holds the resolved services.Principal for role-gated routes.
	ContextKeyPrincipal = "principal"

	SessionCookieName = "marketplace_session"
	RequestIDHeader   = "X-Request-ID"

	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 150

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

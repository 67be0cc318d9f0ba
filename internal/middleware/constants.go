// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "auth_token"

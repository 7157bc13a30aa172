package constant

// Constant package provides constants used throughout the application.

type ctxKey string

const (
	CorrelationIDKey ctxKey = "CorrelationID"
)

// gin context keys
const (
	SessionKey       = "session"
	ValidatedBody    = "validatedBody"
	ValidatedParams  = "validatedParams"
	ValidatedQuery   = "validatedQuery"
	RequestIDKey     = "requestId"
	UserIDKey        = "userId"
	CorrelationIDHdr = "X-Correlation-ID"
)

// Theme values persisted in the session
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

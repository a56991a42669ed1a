package internal

import (
	"context"
	"time"
)

// Session replaces the legacy console's sessionStorage-derived globals with an
// explicit object carried on the request context.
type Session struct {
	UserID     int64
	EmployeeID int64
	Role       string
	Language   string
}

type ctxKey string

const contextSessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	if session, ok := ctx.Value(contextSessionKey).(Session); ok {
		return session, true
	}
	return Session{}, false
}

func ContextWithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, contextSessionKey, session)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}

package context

import (
	"context"

	"github.com/dtroode/trueconf-console/internal/model"
)

type ctxKey string

const (
	sessionKey   ctxKey = "session"
	requestIDKey ctxKey = "request_id"
)

// Manager stores per-request values in the request context.
type Manager struct{}

// NewManager creates a new request context manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetSessionToContext returns a context carrying the session state.
func (m *Manager) SetSessionToContext(ctx context.Context, state model.SessionState) context.Context {
	return context.WithValue(ctx, sessionKey, state)
}

// GetSessionFromContext retrieves the session state set by the session middleware.
func (m *Manager) GetSessionFromContext(ctx context.Context) (model.SessionState, bool) {
	state, ok := ctx.Value(sessionKey).(model.SessionState)
	return state, ok
}

// SetRequestIDToContext returns a context carrying the request id.
func (m *Manager) SetRequestIDToContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestIDFromContext retrieves the request id, or "" when none was set.
func (m *Manager) GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

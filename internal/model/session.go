package model

import (
	"context"
	"time"
)

// SessionState is the per-browser authentication flag.
type SessionState struct {
	Authenticated bool
	ExpiresAt     time.Time
}

// Flash kinds.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-time notice that survives a redirect.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"msg"`
}

// FlashData is everything carried to the next page render.
type FlashData struct {
	Messages []Flash           `json:"messages,omitempty"`
	OldInput map[string]string `json:"old_input,omitempty"`
}

// Empty reports whether there is nothing to carry.
func (f FlashData) Empty() bool {
	return len(f.Messages) == 0 && len(f.OldInput) == 0
}

// ContextManager stores and retrieves per-request values.
type ContextManager interface {
	SetSessionToContext(ctx context.Context, state SessionState) context.Context
	GetSessionFromContext(ctx context.Context) (SessionState, bool)
	SetRequestIDToContext(ctx context.Context, requestID string) context.Context
	GetRequestIDFromContext(ctx context.Context) string
}

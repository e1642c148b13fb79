package context

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/trueconf-console/internal/model"
)

func TestManager_Session(t *testing.T) {
	m := NewManager()

	_, ok := m.GetSessionFromContext(context.Background())
	assert.False(t, ok)

	state := model.SessionState{Authenticated: true, ExpiresAt: time.Now().Add(time.Hour)}
	ctx := m.SetSessionToContext(context.Background(), state)

	got, ok := m.GetSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, state, got)
}

func TestManager_RequestID(t *testing.T) {
	m := NewManager()

	assert.Empty(t, m.GetRequestIDFromContext(context.Background()))

	ctx := m.SetRequestIDToContext(context.Background(), "req-1")
	assert.Equal(t, "req-1", m.GetRequestIDFromContext(ctx))
}

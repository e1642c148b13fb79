// Package session keeps the console login state and flash notices in signed cookies.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dtroode/trueconf-console/internal/model"
	"github.com/dtroode/trueconf-console/internal/token"
)

const (
	SessionCookie = "session"
	FlashCookie   = "flash"

	flashTTL = 5 * time.Minute

	// maxFlashTokenSize keeps the flash cookie below the 4 KB browser limit,
	// leaving room for the cookie attributes.
	maxFlashTokenSize = 3500
	maxFlashMessage   = 500
)

// Manager reads and writes the session and flash cookies.
type Manager struct {
	tokens *token.JWT
	ttl    time.Duration
	secure bool
}

// NewManager creates a cookie session manager. secure marks cookies HTTPS-only.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		tokens: token.NewJWT(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Load returns the session of r. A missing, tampered or expired cookie yields an
// unauthenticated state.
func (m *Manager) Load(r *http.Request) model.SessionState {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return model.SessionState{}
	}

	state, err := m.tokens.ParseSessionToken(c.Value)
	if err != nil {
		return model.SessionState{}
	}

	return state
}

// Authenticate issues a fresh authenticated session cookie.
func (m *Manager) Authenticate(w http.ResponseWriter) error {
	value, expiresAt, err := m.tokens.GenerateSessionToken(m.ttl)
	if err != nil {
		return fmt.Errorf("failed to issue session: %w", err)
	}

	http.SetCookie(w, m.cookie(SessionCookie, value, expiresAt, int(m.ttl.Seconds())))

	return nil
}

// Clear removes the session and flash cookies.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(SessionCookie, "", time.Unix(0, 0), -1))
	http.SetCookie(w, m.cookie(FlashCookie, "", time.Unix(0, 0), -1))
}

// SetFlash stores data for the next page render. When the encoded data would not
// fit in a cookie, the old input is dropped first and long messages are cut next,
// so the notice itself always survives.
func (m *Manager) SetFlash(w http.ResponseWriter, data model.FlashData) error {
	value, err := m.tokens.GenerateFlashToken(data, flashTTL)
	if err != nil {
		return fmt.Errorf("failed to issue flash: %w", err)
	}

	if len(value) > maxFlashTokenSize && len(data.OldInput) > 0 {
		data.OldInput = nil
		if value, err = m.tokens.GenerateFlashToken(data, flashTTL); err != nil {
			return fmt.Errorf("failed to issue flash: %w", err)
		}
	}

	if len(value) > maxFlashTokenSize {
		data.Messages = truncateMessages(data.Messages, maxFlashMessage)
		if value, err = m.tokens.GenerateFlashToken(data, flashTTL); err != nil {
			return fmt.Errorf("failed to issue flash: %w", err)
		}
	}

	http.SetCookie(w, m.cookie(FlashCookie, value, time.Now().Add(flashTTL), int(flashTTL.Seconds())))

	return nil
}

// PopFlash returns the pending flash data and deletes it.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) model.FlashData {
	c, err := r.Cookie(FlashCookie)
	if err != nil || c.Value == "" {
		return model.FlashData{}
	}

	http.SetCookie(w, m.cookie(FlashCookie, "", time.Unix(0, 0), -1))

	data, err := m.tokens.ParseFlashToken(c.Value)
	if err != nil {
		return model.FlashData{}
	}

	return data
}

func (m *Manager) cookie(name, value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func truncateMessages(messages []model.Flash, limit int) []model.Flash {
	out := make([]model.Flash, 0, len(messages))
	for _, msg := range messages {
		if r := []rune(msg.Message); len(r) > limit {
			msg.Message = string(r[:limit]) + "..."
		}
		out = append(out, msg)
	}
	return out
}

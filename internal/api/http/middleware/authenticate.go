package middleware

import (
	"net/http"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/model"
)

// LoginPath is where unauthenticated operators are sent.
const LoginPath = "/login"

// SessionLoader resolves the session of a request from its cookies.
type SessionLoader interface {
	Load(r *http.Request) model.SessionState
}

// Authenticate loads the operator session and guards protected routes.
type Authenticate struct {
	sessions       SessionLoader
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionLoader, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle puts the session state of every request into its context.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := m.sessions.Load(r)
		next.ServeHTTP(w, r.WithContext(m.contextManager.SetSessionToContext(r.Context(), state)))
	})
}

// RequireAuth redirects requests without an authenticated session to the login page.
func (m *Authenticate) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, ok := m.contextManager.GetSessionFromContext(r.Context())
		if !ok {
			state = m.sessions.Load(r)
		}
		if !state.Authenticated {
			m.logger.Debug("HTTP request rejected: not authenticated",
				"path", r.URL.Path)
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

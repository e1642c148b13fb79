package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/model"
)

// AuthService checks the console password.
type AuthService interface {
	Login(password string) error
}

// SessionStore issues and clears operator sessions.
type SessionStore interface {
	FlashStore
	Authenticate(w http.ResponseWriter) error
	Clear(w http.ResponseWriter)
}

// Auth handles login and logout.
type Auth struct {
	authService    AuthService
	sessions       SessionStore
	renderer       *Renderer
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, sessions SessionStore, renderer *Renderer, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		sessions:       sessions,
		renderer:       renderer,
		contextManager: contextManager,
		logger:         logger,
	}
}

// LoginForm renders the login page, or sends an authenticated operator to the dashboard.
func (h *Auth) LoginForm(w http.ResponseWriter, r *http.Request) {
	if state, _ := h.contextManager.GetSessionFromContext(r.Context()); state.Authenticated {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, pageLogin, h.renderer.Page(w, r, "Login"))
}

// Login checks the submitted password and opens a session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, http.StatusBadRequest)
		return
	}

	err := h.authService.Login(r.PostForm.Get("password"))
	if errors.Is(err, model.ErrInvalidPassword) {
		h.flash(w, model.FlashData{Messages: []model.Flash{{Kind: model.FlashError, Message: "The password you entered is incorrect."}}})
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"error", err.Error())
		h.renderer.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	if err := h.sessions.Authenticate(w); err != nil {
		h.logger.Error("Auth handler: failed to open session",
			"error", err.Error())
		h.renderer.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	h.flash(w, model.FlashData{Messages: []model.Flash{{Kind: model.FlashSuccess, Message: "You have logged in successfully."}}})
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *Auth) flash(w http.ResponseWriter, data model.FlashData) {
	if err := h.sessions.SetFlash(w, data); err != nil {
		h.logger.Error("Auth handler: failed to set flash",
			"error", err.Error())
	}
}

package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/dtroode/trueconf-console/internal/logger"
)

// ErrorRenderer renders the error page for a status code.
type ErrorRenderer interface {
	RenderError(w http.ResponseWriter, r *http.Request, status int)
}

// Recover turns a panicking handler into a 500 error page.
type Recover struct {
	renderer ErrorRenderer
	logger   *logger.Logger
}

// NewRecover creates a new Recover middleware.
func NewRecover(renderer ErrorRenderer, logger *logger.Logger) *Recover {
	return &Recover{renderer: renderer, logger: logger}
}

// Handle recovers from panics in next.
func (m *Recover) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			m.logger.Error("HTTP request panicked",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()))
			m.renderer.RenderError(w, r, http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

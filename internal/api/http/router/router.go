package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dtroode/trueconf-console/internal/api/http/handler"
	"github.com/dtroode/trueconf-console/internal/api/http/middleware"
	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/metrics"
	"github.com/dtroode/trueconf-console/internal/model"
	"github.com/dtroode/trueconf-console/internal/session"
	"github.com/dtroode/trueconf-console/web"
)

const serviceName = "trueconf-console"

// Router wires the console pages, the JSON endpoints and the middleware chain.
type Router struct {
	authService    handler.AuthService
	userService    handler.UserService
	importService  handler.ImportService
	sessions       *session.Manager
	contextManager model.ContextManager
	gatherer       prometheus.Gatherer
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	authService handler.AuthService,
	userService handler.UserService,
	importService handler.ImportService,
	sessions *session.Manager,
	contextManager model.ContextManager,
	gatherer prometheus.Gatherer,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		importService:  importService,
		sessions:       sessions,
		contextManager: contextManager,
		gatherer:       gatherer,
		metrics:        metrics,
		logger:         logger,
	}
}

// Register builds the handler tree.
//
// Every request gets a request id, panic recovery, access logging and the
// session loaded into its context. Everything except login, health, metrics
// and static assets requires an authenticated session.
func (r *Router) Register() (http.Handler, error) {
	renderer, err := handler.NewRenderer(web.Templates(), r.sessions, r.contextManager, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	requestID := middleware.NewRequestID(r.contextManager)
	recoverer := middleware.NewRecover(renderer, r.logger)
	logging := middleware.NewLogging(r.contextManager, r.metrics, r.logger)
	authenticate := middleware.NewAuthenticate(r.sessions, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.sessions, renderer, r.contextManager, r.logger)
	usersHandler := handler.NewUsers(r.userService, r.sessions, renderer, r.logger)
	importHandler := handler.NewImport(r.importService, r.sessions, renderer, r.logger)

	mux := chi.NewRouter()
	mux.Use(requestID.Handle, recoverer.Handle, logging.Handle, authenticate.Handle)
	mux.NotFound(renderer.NotFound)
	mux.MethodNotAllowed(renderer.NotFound)

	mux.Get("/healthz", healthz)
	mux.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	mux.Get("/login", authHandler.LoginForm)
	mux.Post("/login", authHandler.Login)
	mux.Get("/logout", authHandler.Logout)

	mux.Group(func(g chi.Router) {
		g.Use(authenticate.RequireAuth)

		g.Get("/", usersHandler.Dashboard)
		g.Get("/tambah", usersHandler.AddForm)
		g.Post("/tambah", usersHandler.Add)
		g.Get("/api/users/search", usersHandler.Suggest)

		g.Get("/import", importHandler.Landing)
		g.Get("/download-template", importHandler.DownloadTemplate)
		g.Post("/import/review", importHandler.Review)
		g.Post("/import/process-stream", importHandler.ProcessStream)
		g.Get("/api/imports", importHandler.Runs)
		g.Get("/import/reports/{runID}", importHandler.Report)
	})

	return otelhttp.NewHandler(mux, serviceName), nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

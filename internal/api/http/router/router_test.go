package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apicontext "github.com/dtroode/trueconf-console/internal/api/http/context"
	"github.com/dtroode/trueconf-console/internal/metrics"
	"github.com/dtroode/trueconf-console/internal/mocks"
	"github.com/dtroode/trueconf-console/internal/model"
	"github.com/dtroode/trueconf-console/internal/session"
	"github.com/dtroode/trueconf-console/internal/testutil"
)

type testRouter struct {
	handler  http.Handler
	sessions *session.Manager
	users    *mocks.UserService
	imports  *mocks.ImportService
}

func newTestRouter(t *testing.T) *testRouter {
	t.Helper()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	sessions := session.NewManager("router-secret", time.Hour, false)
	users := mocks.NewUserService(t)
	imports := mocks.NewImportService(t)

	r := New(mocks.NewAuthService(t), users, imports, sessions, apicontext.NewManager(), reg, m, testutil.MakeNoopLogger())
	h, err := r.Register()
	require.NoError(t, err)

	return &testRouter{handler: h, sessions: sessions, users: users, imports: imports}
}

func (tr *testRouter) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec
}

func (tr *testRouter) login(t *testing.T, req *http.Request) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, tr.sessions.Authenticate(rec))
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestRouter_PublicRoutes(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = tr.serve(httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = tr.serve(httptest.NewRequest(http.MethodGet, "/static/app.css", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = tr.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "trueconf_console_http_requests")
}

func TestRouter_ProtectedRoutesRedirect(t *testing.T) {
	tr := newTestRouter(t)

	for _, path := range []string{"/", "/tambah", "/import", "/download-template", "/api/imports", "/api/users/search?term=al"} {
		t.Run(path, func(t *testing.T) {
			rec := tr.serve(httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/login", rec.Header().Get("Location"))
		})
	}
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	tr := newTestRouter(t)

	tr.users.On("SuggestIDs", mock.Anything, "al").Return([]string{"alice"})
	rec := tr.serve(tr.login(t, httptest.NewRequest(http.MethodGet, "/api/users/search?term=al", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["alice"]`, rec.Body.String())

	tr.imports.On("Runs", mock.Anything, mock.Anything).Return([]model.ImportRun{}, nil)
	rec = tr.serve(tr.login(t, httptest.NewRequest(http.MethodGet, "/api/imports", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = tr.serve(tr.login(t, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/logout")

	rec = tr.serve(tr.login(t, httptest.NewRequest(http.MethodGet, "/login", nil)))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_NotFound(t *testing.T) {
	tr := newTestRouter(t)

	rec := tr.serve(httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = tr.serve(httptest.NewRequest(http.MethodDelete, "/login", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

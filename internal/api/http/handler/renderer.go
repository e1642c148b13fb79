package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/model"
)

// Page template names.
const (
	pageLogin  = "login"
	pageIndex  = "index"
	pageTambah = "tambah"
	pageImport = "import"
	pageError  = "error"
)

var pageNames = []string{pageLogin, pageIndex, pageTambah, pageImport, pageError}

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"pages": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages          map[string]*template.Template
	flashes        FlashStore
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRenderer parses every page from templates.
func NewRenderer(templates fs.FS, flashes FlashStore, contextManager model.ContextManager, logger *logger.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templates, "layout.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages:          pages,
		flashes:        flashes,
		contextManager: contextManager,
		logger:         logger,
	}, nil
}

// Page builds the view model of r, consuming any pending flash data.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, title string) PageData {
	state, _ := rd.contextManager.GetSessionFromContext(r.Context())
	return newPageData(r, title, rd.flashes.PopFlash(w, r), state.Authenticated)
}

// Render writes page with status.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data PageData) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("Renderer: unknown page",
			"page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.logger.Error("Renderer: failed to execute template",
			"page", page,
			"error", err.Error(),
			"request_id", rd.contextManager.GetRequestIDFromContext(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError writes the error page for status.
func (rd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int) {
	data := rd.Page(w, r, http.StatusText(status))
	data.StatusCode = status
	data.Message = errorPageMessage(status)

	rd.Render(w, r, status, pageError, data)
}

// NotFound renders the 404 page.
func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.RenderError(w, r, http.StatusNotFound)
}

func errorPageMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "Page not found"
	case http.StatusInternalServerError:
		return "Something went wrong. Please try again."
	default:
		return http.StatusText(status)
	}
}

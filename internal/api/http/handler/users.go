package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/model"
)

// DashboardPageSize is the number of users per dashboard page.
const DashboardPageSize = 10

// UserService looks up and creates directory users.
type UserService interface {
	Find(ctx context.Context, term string, page, pageSize int) (model.UserPage, error)
	Create(ctx context.Context, in model.UserInput) (model.UserRecord, error)
	SuggestIDs(ctx context.Context, term string) []string
}

// Users handles the dashboard, the add-user form and the typeahead.
type Users struct {
	userService UserService
	flashes     FlashStore
	renderer    *Renderer
	logger      *logger.Logger
}

// NewUsers creates a new Users handler.
func NewUsers(userService UserService, flashes FlashStore, renderer *Renderer, logger *logger.Logger) *Users {
	return &Users{
		userService: userService,
		flashes:     flashes,
		renderer:    renderer,
		logger:      logger,
	}
}

// Dashboard renders the search page.
func (h *Users) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := h.renderer.Page(w, r, "Dashboard")
	data.SearchQuery = r.URL.Query().Get("search")
	data.Users = []model.UserRecord{}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		data.CurrentPage = page
	}

	if data.SearchQuery != "" {
		result, err := h.userService.Find(r.Context(), data.SearchQuery, data.CurrentPage, DashboardPageSize)
		if err != nil {
			h.logger.Error("Users handler: failed to fetch users",
				"search", data.SearchQuery,
				"error", err.Error())
			data.InlineError = "Failed to fetch user data. Please try again."
		} else {
			data.Users = result.Users
			data.TotalPages = result.TotalPages
			if len(result.Users) > 0 {
				data.SearchSuccess = fmt.Sprintf("Search for %q found results.", data.SearchQuery)
			}
		}
	}

	h.renderer.Render(w, r, http.StatusOK, pageIndex, data)
}

// AddForm renders the add-user form.
func (h *Users) AddForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, pageTambah, h.renderer.Page(w, r, "Add User"))
}

// Add creates one user from the submitted form.
func (h *Users) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, r, http.StatusBadRequest)
		return
	}

	in := model.UserInput{
		ID:          r.PostForm.Get("id"),
		Password:    r.PostForm.Get("password"),
		DisplayName: r.PostForm.Get("display_name"),
		FirstName:   r.PostForm.Get("first_name"),
		LastName:    r.PostForm.Get("last_name"),
		Company:     r.PostForm.Get("company"),
	}

	if err := in.Validate(); err != nil {
		h.redirectBack(w, r, in, "User ID and password are required.")
		return
	}

	created, err := h.userService.Create(r.Context(), in)
	if err != nil {
		h.redirectBack(w, r, in, "Failed to add user: "+errorText(err))
		return
	}

	id := created.ID
	if id == "" {
		id = in.ID
	}

	h.flash(w, model.FlashData{Messages: []model.Flash{{Kind: model.FlashSuccess, Message: fmt.Sprintf("User %q was added successfully.", id)}}})
	http.Redirect(w, r, "/?search="+url.QueryEscape(id), http.StatusFound)
}

// Suggest returns the ids of users matching the term query parameter.
func (h *Users) Suggest(w http.ResponseWriter, r *http.Request) {
	ids := h.userService.SuggestIDs(r.Context(), r.URL.Query().Get("term"))
	writeJSON(w, http.StatusOK, ids, h.logger)
}

func (h *Users) redirectBack(w http.ResponseWriter, r *http.Request, in model.UserInput, message string) {
	h.flash(w, model.FlashData{
		Messages: []model.Flash{{Kind: model.FlashError, Message: message}},
		OldInput: map[string]string{
			"id":           in.ID,
			"display_name": in.DisplayName,
			"first_name":   in.FirstName,
			"last_name":    in.LastName,
			"company":      in.Company,
		},
	})
	http.Redirect(w, r, "/tambah", http.StatusFound)
}

func (h *Users) flash(w http.ResponseWriter, data model.FlashData) {
	if err := h.flashes.SetFlash(w, data); err != nil {
		h.logger.Error("Users handler: failed to set flash",
			"error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("HTTP handler: failed to write response",
			"error", err.Error())
	}
}

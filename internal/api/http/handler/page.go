package handler

import (
	"net/http"

	"github.com/dtroode/trueconf-console/internal/model"
)

// PageData is the view model of one rendered page.
type PageData struct {
	Title         string
	CurrentPath   string
	Authenticated bool

	Success  []string
	Errors   []string
	OldInput map[string]string

	SearchQuery   string
	SearchSuccess string
	InlineError   string
	Users         []model.UserRecord
	CurrentPage   int
	TotalPages    int

	ActiveTab     string
	UsersToReview []model.ImportRow

	StatusCode int
	Message    string
}

// FlashStore carries one-time notices across a redirect.
type FlashStore interface {
	SetFlash(w http.ResponseWriter, data model.FlashData) error
	PopFlash(w http.ResponseWriter, r *http.Request) model.FlashData
}

func newPageData(r *http.Request, title string, flash model.FlashData, authenticated bool) PageData {
	page := PageData{
		Title:         title,
		CurrentPath:   r.URL.Path,
		Authenticated: authenticated,
		OldInput:      flash.OldInput,
		CurrentPage:   1,
	}
	if page.OldInput == nil {
		page.OldInput = map[string]string{}
	}

	for _, msg := range flash.Messages {
		switch msg.Kind {
		case model.FlashSuccess:
			page.Success = append(page.Success, msg.Message)
		default:
			page.Errors = append(page.Errors, msg.Message)
		}
	}

	return page
}

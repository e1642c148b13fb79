package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/model"
	"github.com/dtroode/trueconf-console/internal/spreadsheet"
)

const (
	// MaxUploadSize bounds the review upload and the processing payload.
	MaxUploadSize = 32 << 20

	templateFileName = "template-add-users.xlsx"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	recentRunsLimit = 20
)

var importTabs = map[string]bool{"download": true, "upload": true, "review": true, "history": true}

// ImportService runs bulk imports and exposes their history.
type ImportService interface {
	Process(ctx context.Context, rows []model.ImportRow, w model.EventWriter) (model.ImportSummary, error)
	Runs(ctx context.Context, limit int) ([]model.ImportRun, error)
	Report(ctx context.Context, runID uuid.UUID) (io.ReadCloser, error)
}

// Import handles the bulk import pages.
type Import struct {
	importService ImportService
	flashes       FlashStore
	renderer      *Renderer
	logger        *logger.Logger
}

// NewImport creates a new Import handler.
func NewImport(importService ImportService, flashes FlashStore, renderer *Renderer, logger *logger.Logger) *Import {
	return &Import{
		importService: importService,
		flashes:       flashes,
		renderer:      renderer,
		logger:        logger,
	}
}

// Landing renders the import page on the requested tab.
func (h *Import) Landing(w http.ResponseWriter, r *http.Request) {
	data := h.renderer.Page(w, r, "Import Users")
	data.ActiveTab = r.URL.Query().Get("tab")
	if !importTabs[data.ActiveTab] {
		data.ActiveTab = "download"
	}
	data.UsersToReview = []model.ImportRow{}

	h.renderer.Render(w, r, http.StatusOK, pageImport, data)
}

// DownloadTemplate sends the empty import workbook.
func (h *Import) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteTemplate(&buf); err != nil {
		h.logger.Error("Import handler: failed to build template",
			"error", err.Error())
		h.renderer.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": templateFileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Review parses the uploaded workbook and renders its rows for confirmation.
func (h *Import) Review(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	file, _, err := r.FormFile("userFile")
	if err != nil {
		msg := "File not found. Please upload a spreadsheet file."
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "The uploaded file is too large."
		}
		h.rejectUpload(w, r, msg)
		return
	}
	defer file.Close()

	rows, err := spreadsheet.Parse(file)
	if err != nil {
		h.logger.Warn("Import handler: rejected workbook",
			"error", err.Error())
		h.rejectUpload(w, r, reviewErrorText(err))
		return
	}

	data := h.renderer.Page(w, r, "Review Import Data")
	data.CurrentPath = "/import"
	data.ActiveTab = "review"
	data.UsersToReview = rows

	h.renderer.Render(w, r, http.StatusOK, pageImport, data)
}

// ProcessStream creates the posted rows and streams progress as server-sent events.
func (h *Import) ProcessStream(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)

	rows, err := decodeRows(r)
	if err != nil {
		h.logger.Warn("Import handler: invalid process payload",
			"error", err.Error())
		http.Error(w, "invalid import payload", http.StatusBadRequest)
		return
	}

	summary, err := h.importService.Process(r.Context(), rows, newSSEWriter(w))
	if err != nil {
		h.logger.Warn("Import handler: progress was not fully delivered",
			"run_id", summary.RunID.String(),
			"error", err.Error())
	}
}

// Runs returns recent import runs as JSON.
func (h *Import) Runs(w http.ResponseWriter, r *http.Request) {
	runs, err := h.importService.Runs(r.Context(), recentRunsLimit)
	if err != nil {
		h.logger.Error("Import handler: failed to list runs",
			"error", err.Error())
		writeJSON(w, http.StatusInternalServerError, []model.ImportRun{}, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, runs, h.logger)
}

// Report streams the archived report of one run.
func (h *Import) Report(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		h.renderer.RenderError(w, r, http.StatusNotFound)
		return
	}

	report, err := h.importService.Report(r.Context(), runID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.logger.Error("Import handler: failed to open report",
				"run_id", runID.String(),
				"error", err.Error())
		}
		h.renderer.RenderError(w, r, statusFor(err))
		return
	}
	defer report.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": "import-" + runID.String() + ".txt"}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, report); err != nil {
		h.logger.Warn("Import handler: failed to stream report",
			"run_id", runID.String(),
			"error", err.Error())
	}
}

func (h *Import) rejectUpload(w http.ResponseWriter, r *http.Request, message string) {
	if err := h.flashes.SetFlash(w, model.FlashData{Messages: []model.Flash{{Kind: model.FlashError, Message: message}}}); err != nil {
		h.logger.Error("Import handler: failed to set flash",
			"error", err.Error())
	}
	http.Redirect(w, r, "/import?tab=upload", http.StatusFound)
}

type processPayload struct {
	Users []model.ImportRow `json:"users"`
}

// decodeRows reads the rows from a JSON body or from the users form field.
func decodeRows(r *http.Request) ([]model.ImportRow, error) {
	var payload processPayload

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode body: %w", err)
		}
		return payload.Users, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	raw := strings.TrimSpace(r.PostForm.Get("users"))
	if raw == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(raw), &payload.Users); err != nil {
		return nil, fmt.Errorf("failed to decode users field: %w", err)
	}

	return payload.Users, nil
}

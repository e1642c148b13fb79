package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/metrics"
	"github.com/dtroode/trueconf-console/internal/model"
)

const separatorLog = "-------------------------------------------"

// ErrStreamClosed is returned by Process when progress events could not all be delivered.
var ErrStreamClosed = errors.New("progress stream closed")

// ReportKey is the storage key of the plain-text report of a run.
func ReportKey(runID uuid.UUID) string {
	return "reports/" + runID.String() + ".txt"
}

type Importer struct {
	directory   model.Directory
	audit       model.ImportAudit
	reports     model.Storage
	metrics     *metrics.Metrics
	emailDomain string
	logger      *logger.Logger
	now         func() time.Time
}

// NewImporter creates the bulk import service. audit and reports are optional
// and may be nil.
func NewImporter(
	directory model.Directory,
	emailDomain string,
	audit model.ImportAudit,
	reports model.Storage,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Importer {
	return &Importer{
		directory:   directory,
		audit:       audit,
		reports:     reports,
		metrics:     metrics,
		emailDomain: emailDomain,
		logger:      logger,
		now:         time.Now,
	}
}

// Process creates rows one at a time, in order, reporting progress to w.
// A failed row never stops the batch, and cancelling ctx does not abort it.
func (s *Importer) Process(ctx context.Context, rows []model.ImportRow, w model.EventWriter) (model.ImportSummary, error) {
	ctx = context.WithoutCancel(ctx)

	stream := &runStream{writer: w, logger: s.logger}

	if len(rows) == 0 {
		stream.emit(model.ProgressEvent{Stage: model.StageEmpty, Log: "No user data to process.", Done: true})
		return model.ImportSummary{}, stream.err
	}

	run := model.ImportRun{
		ID:        uuid.New(),
		StartedAt: s.now(),
		Total:     len(rows),
	}
	summary := model.ImportSummary{RunID: run.ID, Total: len(rows)}
	logger := s.logger.With("run_id", run.ID.String())

	logger.Info("Importer: run started",
		"total", len(rows))
	s.startRun(ctx, logger, run)

	stream.emit(model.ProgressEvent{
		Stage: model.StageStarted,
		Log:   fmt.Sprintf("Starting to add %d users...", len(rows)),
	})

	for i, row := range rows {
		n := i + 1
		id := strings.TrimSpace(row.ID)

		stream.line(separatorLog)
		stream.emit(model.ProgressEvent{
			Stage: model.StageRowStarted,
			Row:   n,
			ID:    id,
			Log:   "Trying to add user: " + id,
		})

		created, err := s.createRow(ctx, row)
		result := model.ImportResult{RunID: run.ID, Row: n, UserID: id, CreatedAt: s.now()}

		if err != nil {
			summary.Failed++
			result.Message = errorMessage(err)
			s.metrics.IncImportRow(metrics.OutcomeFailed)
			logger.Warn("Importer: row failed",
				"row", n,
				"id", id,
				"error", err.Error())

			stream.emit(model.ProgressEvent{
				Stage: model.StageRowFailed,
				Row:   n,
				ID:    id,
				Log:   fmt.Sprintf("FAILED: user %q could not be created. Reason: %s", id, result.Message),
			})
		} else {
			summary.Succeeded++
			result.Succeeded = true
			s.metrics.IncImportRow(metrics.OutcomeSucceeded)

			msg := fmt.Sprintf("SUCCESS: user %q was processed.", created.ID)
			if created.ID == "" {
				msg = fmt.Sprintf("SUCCESS: user %q was processed, but the response was unexpected.", id)
			} else {
				result.UserID = created.ID
			}
			result.Message = msg

			stream.emit(model.ProgressEvent{
				Stage: model.StageRowSucceeded,
				Row:   n,
				ID:    result.UserID,
				Log:   msg,
			})
		}

		s.recordResult(ctx, logger, result)
	}

	stream.line(separatorLog)
	stream.emit(model.ProgressEvent{
		Stage: model.StageCompleted,
		Log:   fmt.Sprintf("Process complete! %d succeeded, %d failed.", summary.Succeeded, summary.Failed),
	})
	stream.emit(model.ProgressEvent{Stage: model.StageDone, Done: true})

	finished := s.now()
	run.FinishedAt = &finished
	run.Succeeded = summary.Succeeded
	run.Failed = summary.Failed

	s.finishRun(ctx, logger, run)
	s.uploadReport(ctx, logger, run.ID, stream.lines)
	s.metrics.IncImportRun()

	logger.Info("Importer: run finished",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)

	return summary, stream.err
}

// Runs lists recent import runs, newest first. Without an audit store it returns an empty list.
func (s *Importer) Runs(ctx context.Context, limit int) ([]model.ImportRun, error) {
	if s.audit == nil {
		return []model.ImportRun{}, nil
	}

	runs, err := s.audit.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}

	return runs, nil
}

// Report opens the archived report of a run. It returns model.ErrNotFound when
// archiving is disabled or the report does not exist.
func (s *Importer) Report(ctx context.Context, runID uuid.UUID) (io.ReadCloser, error) {
	if s.reports == nil {
		return nil, model.ErrNotFound
	}

	key := ReportKey(runID)

	exists, err := s.reports.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check report: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	reader, err := s.reports.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download report: %w", err)
	}

	return reader, nil
}

func (s *Importer) createRow(ctx context.Context, row model.ImportRow) (model.UserRecord, error) {
	record, err := model.NewUserRecord(row, s.emailDomain)
	if err != nil {
		return model.UserRecord{}, err
	}

	return s.directory.CreateUser(ctx, record)
}

func (s *Importer) startRun(ctx context.Context, logger *logger.Logger, run model.ImportRun) {
	if s.audit == nil {
		return
	}
	if err := s.audit.StartRun(ctx, run); err != nil {
		logger.Error("Importer: failed to record run start",
			"error", err.Error())
	}
}

func (s *Importer) recordResult(ctx context.Context, logger *logger.Logger, result model.ImportResult) {
	if s.audit == nil {
		return
	}
	if err := s.audit.RecordResult(ctx, result); err != nil {
		logger.Error("Importer: failed to record row result",
			"row", result.Row,
			"error", err.Error())
	}
}

func (s *Importer) finishRun(ctx context.Context, logger *logger.Logger, run model.ImportRun) {
	if s.audit == nil {
		return
	}
	if err := s.audit.FinishRun(ctx, run); err != nil {
		logger.Error("Importer: failed to record run finish",
			"error", err.Error())
	}
}

func (s *Importer) uploadReport(ctx context.Context, logger *logger.Logger, runID uuid.UUID, lines []string) {
	if s.reports == nil {
		return
	}

	body := strings.Join(lines, "\n") + "\n"
	if err := s.reports.Upload(ctx, ReportKey(runID), strings.NewReader(body)); err != nil {
		logger.Error("Importer: failed to upload report",
			"error", err.Error())
		return
	}

	logger.Debug("Importer: report uploaded",
		"key", ReportKey(runID))
}

// errorMessage extracts the operator-facing text of a row failure.
func errorMessage(err error) string {
	var dErr *model.DirectoryError
	if errors.As(err, &dErr) {
		return dErr.Error()
	}
	return err.Error()
}

// runStream forwards events to the writer until the first write failure and
// keeps every log line for the run report.
type runStream struct {
	writer model.EventWriter
	logger *logger.Logger
	lines  []string
	err    error
}

// line adds text to the report only.
func (s *runStream) line(text string) {
	s.lines = append(s.lines, text)
}

func (s *runStream) emit(event model.ProgressEvent) {
	if event.Log != "" {
		s.lines = append(s.lines, event.Log)
	}
	if s.err != nil {
		return
	}
	if err := s.writer.WriteEvent(event); err != nil {
		s.err = fmt.Errorf("%w: %w", ErrStreamClosed, err)
		s.logger.Warn("Importer: progress stream closed, continuing without it",
			"error", err.Error())
	}
}

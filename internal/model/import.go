package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventStage identifies the kind of a progress event.
type EventStage string

const (
	// StageEmpty is the only event of a run with nothing to process.
	StageEmpty EventStage = "empty"
	// StageStarted opens a run.
	StageStarted EventStage = "started"
	// StageRowStarted precedes the creation of one row.
	StageRowStarted EventStage = "row_started"
	// StageRowSucceeded follows a successful creation.
	StageRowSucceeded EventStage = "row_succeeded"
	// StageRowFailed follows a failed creation.
	StageRowFailed EventStage = "row_failed"
	// StageCompleted carries the run summary.
	StageCompleted EventStage = "completed"
	// StageDone is the terminal event; nothing follows it.
	StageDone EventStage = "done"
)

// ProgressEvent is one unit of import progress pushed to the browser.
type ProgressEvent struct {
	Stage EventStage `json:"stage"`
	Row   int        `json:"row,omitempty"`
	ID    string     `json:"id,omitempty"`
	Log   string     `json:"log,omitempty"`
	Done  bool       `json:"done,omitempty"`
}

// EventWriter delivers progress events to the caller, in order.
type EventWriter interface {
	WriteEvent(event ProgressEvent) error
}

// ImportSummary is the outcome of one processed batch.
type ImportSummary struct {
	RunID     uuid.UUID
	Total     int
	Succeeded int
	Failed    int
}

// ImportRun is the audit record of one processing run.
type ImportRun struct {
	ID         uuid.UUID  `json:"id"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Total      int        `json:"total"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
}

// ImportResult is the audit record of one row outcome. It never holds a password.
type ImportResult struct {
	RunID     uuid.UUID
	Row       int
	UserID    string
	Succeeded bool
	Message   string
	CreatedAt time.Time
}

// ImportAudit persists import runs and their per-row outcomes.
type ImportAudit interface {
	StartRun(ctx context.Context, run ImportRun) error
	RecordResult(ctx context.Context, result ImportResult) error
	FinishRun(ctx context.Context, run ImportRun) error
	ListRuns(ctx context.Context, limit int) ([]ImportRun, error)
}

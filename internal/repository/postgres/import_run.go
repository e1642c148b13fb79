package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dtroode/trueconf-console/internal/model"
)

// Ensure ImportRunRepository implements the model.ImportAudit interface.
var _ model.ImportAudit = (*ImportRunRepository)(nil)

// DBTX is the part of *sql.DB the repository needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type ImportRunRepository struct {
	db DBTX
}

func NewImportRunRepository(db DBTX) *ImportRunRepository {
	return &ImportRunRepository{db: db}
}

func (r *ImportRunRepository) StartRun(ctx context.Context, run model.ImportRun) error {
	const query = `
        INSERT INTO import_runs (id, started_at, total)
        VALUES ($1, $2, $3)
    `

	if _, err := r.db.ExecContext(ctx, query, run.ID, run.StartedAt, run.Total); err != nil {
		return fmt.Errorf("failed to insert import run: %w", err)
	}
	return nil
}

// RecordResult stores one row outcome. Passwords are never part of a result.
func (r *ImportRunRepository) RecordResult(ctx context.Context, result model.ImportResult) error {
	const query = `
        INSERT INTO import_results (run_id, row_number, user_id, succeeded, message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	if _, err := r.db.ExecContext(ctx, query,
		result.RunID,
		result.Row,
		result.UserID,
		result.Succeeded,
		result.Message,
		result.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert import result: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) FinishRun(ctx context.Context, run model.ImportRun) error {
	const query = `
        UPDATE import_runs
        SET finished_at = $2, succeeded = $3, failed = $4
        WHERE id = $1
    `

	res, err := r.db.ExecContext(ctx, query, run.ID, run.FinishedAt, run.Succeeded, run.Failed)
	if err != nil {
		return fmt.Errorf("failed to update import run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to update import run %s: %w", run.ID, model.ErrNotFound)
	}

	return nil
}

// ListRuns returns up to limit runs, newest first.
func (r *ImportRunRepository) ListRuns(ctx context.Context, limit int) ([]model.ImportRun, error) {
	const query = `
        SELECT id, started_at, finished_at, total, succeeded, failed
        FROM import_runs
        ORDER BY started_at DESC
        LIMIT $1
    `

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer rows.Close()

	runs := []model.ImportRun{}
	for rows.Next() {
		var (
			run      model.ImportRun
			finished sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.StartedAt, &finished, &run.Total, &run.Succeeded, &run.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = &finished.Time
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import runs: %w", err)
	}

	return runs, nil
}

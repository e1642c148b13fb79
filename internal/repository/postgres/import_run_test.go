package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/trueconf-console/internal/model"
)

func newRepoWithMock(t *testing.T) (*ImportRunRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewImportRunRepository(db), mock
}

func TestImportRunRepository_StartRun(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	run := model.ImportRun{ID: uuid.New(), StartedAt: time.Now(), Total: 3}

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+import_runs\s*\(id,\s*started_at,\s*total\)`).
		WithArgs(run.ID, run.StartedAt, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.StartRun(context.Background(), run))
}

func TestImportRunRepository_StartRun_Error(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+import_runs`).
		WillReturnError(errors.New("db down"))

	err := repo.StartRun(context.Background(), model.ImportRun{ID: uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert import run")
}

func TestImportRunRepository_RecordResult(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	result := model.ImportResult{
		RunID:     uuid.New(),
		Row:       2,
		UserID:    "alice",
		Succeeded: false,
		Message:   "User already exists",
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`(?s)INSERT\s+INTO\s+import_results\s*\(run_id,\s*row_number,\s*user_id,\s*succeeded,\s*message,\s*created_at\)`).
		WithArgs(result.RunID, 2, "alice", false, "User already exists", result.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.RecordResult(context.Background(), result))
}

func TestImportRunRepository_FinishRun(t *testing.T) {
	finished := time.Now()
	run := model.ImportRun{ID: uuid.New(), FinishedAt: &finished, Succeeded: 2, Failed: 1}

	t.Run("updated", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(`(?s)UPDATE\s+import_runs\s+SET\s+finished_at`).
			WithArgs(run.ID, finished, 2, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.FinishRun(context.Background(), run))
	})

	t.Run("unknown run", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(`UPDATE\s+import_runs`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.FinishRun(context.Background(), run)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(`UPDATE\s+import_runs`).
			WillReturnError(sql.ErrConnDone)

		err := repo.FinishRun(context.Background(), run)
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestImportRunRepository_ListRuns(t *testing.T) {
	q := `(?s)SELECT\s+id,\s*started_at,\s*finished_at,\s*total,\s*succeeded,\s*failed\s+FROM\s+import_runs\s+ORDER\s+BY\s+started_at\s+DESC\s+LIMIT\s+\$1`
	cols := []string{"id", "started_at", "finished_at", "total", "succeeded", "failed"}

	t.Run("rows", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		newer, older := uuid.New(), uuid.New()
		started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		finished := started.Add(time.Minute)

		mock.ExpectQuery(q).
			WithArgs(20).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(newer.String(), started, nil, 4, 0, 0).
				AddRow(older.String(), started.Add(-time.Hour), finished, 3, 2, 1))

		runs, err := repo.ListRuns(context.Background(), 20)
		require.NoError(t, err)
		require.Len(t, runs, 2)

		assert.Equal(t, newer, runs[0].ID)
		assert.Nil(t, runs[0].FinishedAt)
		assert.Equal(t, 4, runs[0].Total)

		assert.Equal(t, older, runs[1].ID)
		require.NotNil(t, runs[1].FinishedAt)
		assert.True(t, finished.Equal(*runs[1].FinishedAt))
		assert.Equal(t, 2, runs[1].Succeeded)
		assert.Equal(t, 1, runs[1].Failed)
	})

	t.Run("empty", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(5).WillReturnRows(sqlmock.NewRows(cols))

		runs, err := repo.ListRuns(context.Background(), 5)
		require.NoError(t, err)
		assert.NotNil(t, runs)
		assert.Empty(t, runs)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnError(errors.New("db down"))

		_, err := repo.ListRuns(context.Background(), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query import runs")
	})

	t.Run("scan error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows(cols).AddRow("not-a-uuid", time.Now(), nil, 1, 0, 0))

		_, err := repo.ListRuns(context.Background(), 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan import run")
	})
}

func TestConnection_CloseNil(t *testing.T) {
	assert.NoError(t, (&Connection{}).Close())
}

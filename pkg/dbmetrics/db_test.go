package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderStub struct {
	operations []string
	errors     int
}

func (r *recorderStub) ObserveDBQuery(operation string, _ time.Duration, err error) {
	r.operations = append(r.operations, operation)
	if err != nil {
		r.errors++
	}
}

func (r *recorderStub) SetDBPoolStats(int, int, int, int64) {}

func TestGetExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := Wrap(db, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, wrapped, GetExecutor(ctx, wrapped))

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, wrapped))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_RecordsQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := &recorderStub{}
	wrapped := Wrap(db, rec)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM schedules").WillReturnResult(sqlmock.NewResult(0, 2))
	_, err = wrapped.ExecContext(ctx, "DELETE FROM schedules WHERE id = $1", 1)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id FROM schedules").WillReturnError(errors.New("connection reset"))
	_, err = wrapped.QueryContext(ctx, "SELECT id FROM schedules")
	require.Error(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, "UPDATE schedules SET available = false")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, []string{"exec", "query", "begin", "tx_exec", "commit"}, rec.operations)
	assert.Equal(t, 1, rec.errors)
	require.NoError(t, mock.ExpectationsWereMet())
}

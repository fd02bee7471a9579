package common

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestBatchInserter_FlushWithSuffix(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tags (name, weight) VALUES ($1, $2), ($3, $4) ON CONFLICT (name) DO NOTHING")).
		WithArgs("fitness", 1, "travel", 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := WithTransaction(context.Background(), db, func(tx *sqlx.Tx) error {
		bi := NewBatchInserter(tx, "INSERT INTO tags (name, weight)", 2, 10).WithSuffix("ON CONFLICT (name) DO NOTHING")
		require.NoError(t, bi.Add(context.Background(), "fitness", 1))
		require.NoError(t, bi.Add(context.Background(), "travel", 2))
		return bi.Flush(context.Background())
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchInserter_WrongValueCount(t *testing.T) {
	bi := NewBatchInserter(nil, "INSERT INTO tags (name, weight)", 2, 10)
	assert.Error(t, bi.Add(context.Background(), "fitness"))
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTransaction(context.Background(), db, func(tx *sqlx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	notFound := errors.New("row not found")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM campaigns WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	type row struct {
		ID string `db:"id"`
	}
	_, err := GetByID[row](context.Background(), db, "campaigns", "42", notFound)

	assert.ErrorIs(t, err, notFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewWithDB(sqlDB), mock
}

func TestGet_Found(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = $1")).
		WithArgs("slimtrack_db_users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	v, ok, err := db.Get(context.Background(), "slimtrack_db_users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(v))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Missing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv WHERE key = $1")).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, ok, err := db.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Error(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv")).
		WillReturnError(errors.New("connection reset"))

	_, _, err := db.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSet_Upserts(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key)")).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv WHERE key = $1")).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.Remove(context.Background(), "k"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove_Error(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv")).
		WillReturnError(errors.New("read-only transaction"))

	err := db.Remove(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove k")
}

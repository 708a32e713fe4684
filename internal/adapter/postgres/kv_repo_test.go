package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDBWithMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	s, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return New(s), mock
}

func TestGet_Found(t *testing.T) {
	db, mock := newDBWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_entries WHERE key=$1;")).
		WithArgs("liftit_users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("[]"))

	v, ok, err := db.Get(context.Background(), "liftit_users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_Missing(t *testing.T) {
	db, mock := newDBWithMock(t)

	mock.ExpectQuery(`SELECT value FROM kv_entries`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := db.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGet_DBError(t *testing.T) {
	db, mock := newDBWithMock(t)

	mock.ExpectQuery(`SELECT value FROM kv_entries`).
		WithArgs("k").
		WillReturnError(errors.New("db down"))

	_, _, err := db.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestSet_Upserts(t *testing.T) {
	db, mock := newDBWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+kv_entries\(key,\s*value,\s*updated_at\)\s+VALUES\(\$1,\s*\$2,\s*\$3\)\s+ON\s+CONFLICT\s+\(key\)\s+DO\s+UPDATE`
	mock.ExpectExec(q).
		WithArgs("k", "v", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.Set(context.Background(), "k", "v"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DBError(t *testing.T) {
	db, mock := newDBWithMock(t)

	mock.ExpectExec(`INSERT INTO kv_entries`).
		WillReturnError(errors.New("disk full"))

	err := db.Set(context.Background(), "k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set k")
}

func TestDelete(t *testing.T) {
	db, mock := newDBWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_entries WHERE key=$1;")).
		WithArgs("liftit_current_user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.Delete(context.Background(), "liftit_current_user"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package sqlstore

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestJSONColumn(t *testing.T) {
	t.Run("nil slice encodes as empty array", func(t *testing.T) {
		var s []string
		v, err := jsonColumn{s}.Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("scan string and bytes", func(t *testing.T) {
		var s []string
		require.NoError(t, jsonColumn{&s}.Scan(`["a","b"]`))
		assert.Equal(t, []string{"a", "b"}, s)

		require.NoError(t, jsonColumn{&s}.Scan([]byte(`["c"]`)))
		assert.Equal(t, []string{"c"}, s)
	})

	t.Run("null leaves value untouched", func(t *testing.T) {
		s := []string{}
		require.NoError(t, jsonColumn{&s}.Scan(nil))
		assert.Equal(t, []string{}, s)
	})

	t.Run("invalid json", func(t *testing.T) {
		var s []string
		assert.Error(t, jsonColumn{&s}.Scan("not json"))
		assert.Error(t, jsonColumn{&s}.Scan(42))
	})
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(errors.New("UNIQUE constraint failed: users.email")), repository.ErrDuplicate)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: "23505"}), repository.ErrDuplicate)
	assert.NotErrorIs(t, mapError(&pgconn.PgError{Code: "23503"}), repository.ErrDuplicate)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
}

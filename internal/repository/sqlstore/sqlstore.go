// Package sqlstore implements the repository interfaces on database/sql through sqlx.
// Queries use ? placeholders and are rebound for the connected driver, so the same
// statements run on SQLite and PostgreSQL. List-valued fields are stored as JSON text.
package sqlstore

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"studybuddy/internal/repository"
)

const pgUniqueViolation = "23505"

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// jsonColumn reads and writes a Go value as a JSON TEXT column. V must be a pointer when scanning.
type jsonColumn struct {
	V any
}

// Value encodes V. Nil slices are stored as an empty array.
func (j jsonColumn) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

// Scan decodes a TEXT or BLOB value into V. NULL and empty strings leave V untouched.
func (j jsonColumn) Scan(src any) error {
	var raw []byte
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		return fmt.Errorf("decode json column: unsupported type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, j.V); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

// mapError translates driver errors into repository sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return repository.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// go-sqlite3 only defines its typed error in cgo builds; the message is stable across both.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// expectAffected returns ErrNotFound when a write touched no rows.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

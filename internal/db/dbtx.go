package db

import (
	"context"
	"database/sql"
	"errors"
)

// DBTX is the common interface satisfied by both *sql.DB and *sql.Tx.
// Repository implementations depend on this interface instead of the
// concrete *sql.DB, enabling transactional composition.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time verification that *sql.DB and *sql.Tx satisfy DBTX.
var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// ErrReadOnly is returned by a read-only DBTX for every write.
var ErrReadOnly = errors.New("write attempted through a read-only connection")

// ReadOnly wraps d so that ExecContext always fails. Simulation paths such
// as calendar projection build their repositories on it, which makes an
// accidental write an error instead of a side effect.
func ReadOnly(d DBTX) DBTX {
	return readOnly{DBTX: d}
}

type readOnly struct {
	DBTX
}

func (readOnly) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, ErrReadOnly
}

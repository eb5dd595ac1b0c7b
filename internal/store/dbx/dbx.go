package dbx

import (
	"context"
	"database/sql"
	"errors"

	"github.com/5w1tchy/library-admin/internal/led"
)

// Queryer/Execer/Getter let these helpers work with *sql.DB and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
type Getter interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	Queryer
	Execer
	Getter
}

// WithinTx runs fn in a read-committed transaction (commit on nil, rollback on error).
func WithinTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// NotFound turns sql.ErrNoRows into led.ErrNotFound and passes other errors through.
func NotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return led.ErrNotFound
	}
	return err
}

// MustAffect reports led.ErrNotFound when an UPDATE or DELETE touched no row.
func MustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return led.ErrNotFound
	}
	return nil
}

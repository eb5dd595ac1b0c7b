// Package pg is the PostgreSQL backend (database/sql over the pgx stdlib driver).
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/5w1tchy/library-admin/internal/led"
	"github.com/5w1tchy/library-admin/internal/store"
	"github.com/5w1tchy/library-admin/internal/store/dbx"
	"github.com/5w1tchy/library-admin/internal/textmatch"
)

type scanner interface {
	Scan(dest ...any) error
}

// table maps one record type onto its table. cols[0] must be "id".
// When text is set, its folded value is kept in search_key so the list filter
// matches exactly what the in-memory backend matches.
type table[T any] struct {
	name string
	cols []string
	text func(T) string
	scan func(scanner) (T, error)
	args func(T) []any
}

func (t table[T]) selectSQL() string {
	return "SELECT " + strings.Join(t.cols, ", ") + " FROM " + t.name
}

func (t table[T]) writeCols() []string {
	if t.text == nil {
		return t.cols
	}
	return append(t.cols[:len(t.cols):len(t.cols)], "search_key")
}

func (t table[T]) writeArgs(rec T) []any {
	args := t.args(rec)
	if t.text != nil {
		args = append(args, textmatch.Fold(t.text(rec)))
	}
	return args
}

func (t table[T]) insertSQL() string {
	cols := t.writeCols()
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(ph, ", ") + ")"
}

func (t table[T]) updateSQL() string {
	cols := t.writeCols()
	sets := make([]string, 0, len(cols)-1)
	for i, c := range cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+2))
	}
	return "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = $1"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likeContains turns already folded text into a LIKE pattern that matches it literally.
func likeContains(folded string) string {
	return "%" + likeEscaper.Replace(folded) + "%"
}

// isKeyTaken reports a primary key collision on t, as opposed to any other unique column.
func (t table[T]) isKeyTaken(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == t.name+"_pkey"
}

// Repo implements store.Repository on one table. Drafts are applied in Go
// to a row locked with SELECT ... FOR UPDATE, then the whole row is written back.
type Repo[T led.Keyed[T]] struct {
	db  *sql.DB
	t   table[T]
	ids led.IDGenerator
}

func newRepo[T led.Keyed[T]](db *sql.DB, t table[T], ids led.IDGenerator) *Repo[T] {
	if ids == nil {
		ids = led.UUIDs{}
	}
	return &Repo[T]{db: db, t: t, ids: ids}
}

func (r *Repo[T]) List(ctx context.Context, q store.Query) ([]T, error) {
	query := r.t.selectSQL()
	var args []any
	if folded := textmatch.Fold(strings.TrimSpace(q.Text)); folded != "" && r.t.text != nil {
		args = append(args, likeContains(folded))
		query += ` WHERE search_key LIKE $1 ESCAPE '\'`
	}
	query += " ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0, 16)
	for rows.Next() {
		rec, err := r.t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repo[T]) Get(ctx context.Context, id string) (T, error) {
	return r.get(ctx, r.db, id, false)
}

func (r *Repo[T]) get(ctx context.Context, g dbx.Getter, id string, lock bool) (T, error) {
	q := r.t.selectSQL() + " WHERE id = $1"
	if lock {
		q += " FOR UPDATE"
	}
	rec, err := r.t.scan(g.QueryRowContext(ctx, q, id))
	if err != nil {
		var zero T
		return zero, dbx.NotFound(err)
	}
	return rec, nil
}

func (r *Repo[T]) Create(ctx context.Context, base T, d led.Draft[T]) (T, error) {
	if d != nil {
		d.Apply(&base)
	}
	var zero T
	for range led.MaxIDAttempts {
		rec := base.WithKey(r.ids.Next())
		_, err := r.db.ExecContext(ctx, r.t.insertSQL(), r.t.writeArgs(rec)...)
		if err == nil {
			return rec, nil
		}
		if !r.t.isKeyTaken(err) {
			return zero, err
		}
	}
	return zero, led.ErrIDExhausted
}

func (r *Repo[T]) Update(ctx context.Context, id string, d led.Draft[T]) (T, error) {
	var out T
	err := dbx.WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		rec, err := r.get(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if d != nil {
			d.Apply(&rec)
		}
		rec = rec.WithKey(id)
		res, err := tx.ExecContext(ctx, r.t.updateSQL(), r.t.writeArgs(rec)...)
		if err != nil {
			return err
		}
		if err := dbx.MustAffect(res); err != nil {
			return err
		}
		out = rec
		return nil
	})
	return out, err
}

func (r *Repo[T]) Delete(ctx context.Context, id string, guard led.Guard[T]) error {
	return dbx.WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		rec, err := r.get(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if guard != nil {
			if err := guard(rec); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM "+r.t.name+" WHERE id = $1", id)
		if err != nil {
			return err
		}
		return dbx.MustAffect(res)
	})
}

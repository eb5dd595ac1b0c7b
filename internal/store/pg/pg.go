package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/led"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
	"github.com/5w1tchy/library-admin/internal/store/dbx"
	"github.com/5w1tchy/library-admin/internal/store/seed"
)

//go:embed schema.sql
var schemaSQL string

// New wires every repository onto db. Loan ids are UUIDs here; the LN-nnn
// sequence only exists in the in-memory backend.
func New(db *sql.DB) store.Stores {
	return store.Stores{
		Authors:    newRepo(db, authorsTable, nil),
		Categories: newRepo(db, categoriesTable, nil),
		Books:      newRepo(db, booksTable, nil),
		Readers:    newRepo(db, readersTable, nil),
		Loans:      newRepo(db, loansTable, nil),
		Settings:   &Settings{db: db},
		Audit:      &Audit{db: db},
	}
}

// Migrate creates missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// SeedDemo loads the demo data set when the catalog is empty.
// It returns false when data was already present.
func SeedDemo(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM authors").Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	err := dbx.WithinTx(ctx, db, func(tx *sql.Tx) error {
		if err := insertAll(ctx, tx, authorsTable, seed.Authors()); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, categoriesTable, seed.Categories()); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, booksTable, seed.Books()); err != nil {
			return err
		}
		if err := insertAll(ctx, tx, readersTable, seed.Readers()); err != nil {
			return err
		}
		return insertAll(ctx, tx, loansTable, seed.Loans())
	})
	return err == nil, err
}

func insertAll[T led.Keyed[T]](ctx context.Context, e dbx.Execer, t table[T], recs []T) error {
	q := t.insertSQL()
	for _, rec := range recs {
		if _, err := e.ExecContext(ctx, q, t.writeArgs(rec)...); err != nil {
			return fmt.Errorf("seed %s %s: %w", t.name, rec.Key(), err)
		}
	}
	return nil
}

// Settings keeps the single settings row; a missing row reads as the defaults.
type Settings struct {
	db *sql.DB
}

func (s *Settings) GetSettings(ctx context.Context) (models.Settings, error) {
	const q = `SELECT library_name, fine_per_day, max_books_per_reader, loan_period_days FROM settings WHERE id = 1`
	var out models.Settings
	err := s.db.QueryRowContext(ctx, q).Scan(&out.LibraryName, &out.FinePerDay, &out.MaxBooksPerReader, &out.LoanPeriodDays)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultSettings(), nil
	}
	return out, err
}

func (s *Settings) PutSettings(ctx context.Context, v models.Settings) error {
	const q = `
INSERT INTO settings (id, library_name, fine_per_day, max_books_per_reader, loan_period_days)
VALUES (1, $1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
  library_name = EXCLUDED.library_name,
  fine_per_day = EXCLUDED.fine_per_day,
  max_books_per_reader = EXCLUDED.max_books_per_reader,
  loan_period_days = EXCLUDED.loan_period_days`
	_, err := s.db.ExecContext(ctx, q, v.LibraryName, v.FinePerDay, v.MaxBooksPerReader, v.LoanPeriodDays)
	return err
}

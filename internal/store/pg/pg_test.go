package pg

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/5w1tchy/library-admin/internal/led"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

func newMock(t *testing.T) (store.Stores, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func ptr[T any](v T) *T { return &v }

func TestListAuthorsWithFilter(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, bio FROM authors WHERE search_key LIKE $1 ESCAPE '\' ORDER BY seq`,
	)).WithArgs("%orwell%").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "bio"}).AddRow("2", "George Orwell", "English novelist"),
	)

	got, err := st.Authors.List(t.Context(), store.Query{Text: " orwell "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].Name != "George Orwell" {
		t.Fatalf("got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListFilterMatchesWildcardsLiterally(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, card_id, name, email, phone, status, joined_date FROM readers WHERE search_key LIKE $1 ESCAPE '\' ORDER BY seq`,
	)).WithArgs(`%50\%\_ngo\\%`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "card_id", "name", "email", "phone", "status", "joined_date"}),
	)

	got, err := st.Readers.List(t.Context(), store.Query{Text: `50%_Ngô\`})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetBookNotFound(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, title, author_id, category_id, isbn, quantity, location, cover_url FROM books WHERE id = $1`,
	)).WithArgs("missing").WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "author_id", "category_id", "isbn", "quantity", "location", "cover_url"}),
	)

	_, err := st.Books.Get(t.Context(), "missing")
	if !errors.Is(err, led.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateBookInsertsFullRow(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO books (id, title, author_id, category_id, isbn, quantity, location, cover_url, search_key) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
	)).WithArgs(sqlmock.AnyArg(), "Dune", "4", "3", "", 1, "", nil, "dune").
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := st.Books.Create(t.Context(), models.NewBook(), models.BookDraft{
		Title: ptr("Dune"), AuthorID: ptr("4"), CategoryID: ptr("3"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if b.ID == "" || b.Quantity != 1 {
		t.Fatalf("got %+v", b)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

type fixedIDs []string

func (f *fixedIDs) Next() string {
	id := (*f)[0]
	*f = (*f)[1:]
	return id
}

func TestCreateSkipsTakenID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	repo := newRepo(db, categoriesTable, &fixedIDs{"5", "6"})

	insert := regexp.QuoteMeta(`INSERT INTO categories (id, name, description, search_key) VALUES ($1, $2, $3, $4)`)
	mock.ExpectExec(insert).WithArgs("5", "Poetry", "", "poetry").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "categories_pkey"})
	mock.ExpectExec(insert).WithArgs("6", "Poetry", "", "poetry").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, err := repo.Create(t.Context(), models.Category{}, models.CategoryDraft{Name: ptr("Poetry")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.ID != "6" {
		t.Fatalf("got id %q, want 6", c.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateDoesNotRetryOtherUniqueColumns(t *testing.T) {
	st, mock := newMock(t)
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "readers_card_id_key"}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO readers`)).WillReturnError(dup)

	_, err := st.Readers.Create(t.Context(), models.NewReader(models.MustDate("2024-03-10")),
		models.ReaderDraft{Name: ptr("Copy"), CardID: ptr("RD-2024001")})
	if !errors.Is(err, dup) {
		t.Fatalf("want unique violation, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateAuthorLocksAndWritesBack(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, name, bio FROM authors WHERE id = $1 FOR UPDATE`,
	)).WithArgs("1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "bio"}).AddRow("1", "J.K. Rowling", "old bio"),
	)
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE authors SET name = $2, bio = $3, search_key = $4 WHERE id = $1`,
	)).WithArgs("1", "J.K. Rowling", "new bio", "j.k. rowling").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	a, err := st.Authors.Update(t.Context(), "1", models.AuthorDraft{Bio: ptr("new bio")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.ID != "1" || a.Name != "J.K. Rowling" || a.Bio != "new bio" {
		t.Fatalf("got %+v", a)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteGuardRollsBack(t *testing.T) {
	st, mock := newMock(t)
	blocked := errors.New("blocked")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, card_id, name, email, phone, status, joined_date FROM readers WHERE id = $1 FOR UPDATE`,
	)).WithArgs("1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "card_id", "name", "email", "phone", "status", "joined_date"}).
			AddRow("1", "RD-2024001", "Nguyen Van A", "a@example.com", "0912345678", "Active", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
	)
	mock.ExpectRollback()

	err := st.Readers.Delete(t.Context(), "1", func(r models.Reader) error {
		if r.Status != models.ReaderActive || r.JoinedDate.String() != "2024-01-15" {
			t.Errorf("guard saw %+v", r)
		}
		return blocked
	})
	if !errors.Is(err, blocked) {
		t.Fatalf("want guard error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteCategory(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, description FROM categories WHERE id = $1 FOR UPDATE`)).
		WithArgs("5").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description"}).AddRow("5", "Technology", ""))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE id = $1`)).
		WithArgs("5").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := st.Categories.Delete(t.Context(), "5", nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListLoansScansNullReturnDate(t *testing.T) {
	st, mock := newMock(t)
	day := func(s string) time.Time { return models.MustDate(s).Time }

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, reader_id, book_id, borrow_date, due_date, return_date, fine FROM loans ORDER BY seq`,
	)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "reader_id", "book_id", "borrow_date", "due_date", "return_date", "fine"}).
			AddRow("LN-001", "1", "1", day("2024-03-01"), day("2024-03-15"), nil, 0).
			AddRow("LN-003", "1", "3", day("2024-01-10"), day("2024-01-24"), day("2024-01-20"), 0),
	)

	got, err := st.Loans.List(t.Context(), store.Query{Text: "ignored"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d loans", len(got))
	}
	if got[0].ReturnDate != nil || !got[0].Open() {
		t.Fatalf("LN-001 should be open: %+v", got[0])
	}
	if got[1].ReturnDate == nil || got[1].ReturnDate.String() != "2024-01-20" {
		t.Fatalf("LN-003 return date: %+v", got[1].ReturnDate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSettingsDefaultWhenMissing(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT library_name, fine_per_day, max_books_per_reader, loan_period_days FROM settings WHERE id = 1`,
	)).WillReturnRows(sqlmock.NewRows([]string{"library_name", "fine_per_day", "max_books_per_reader", "loan_period_days"}))

	got, err := st.Settings.GetSettings(t.Context())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != models.DefaultSettings() {
		t.Fatalf("got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAppendAuditBatch(t *testing.T) {
	st, mock := newMock(t)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO audit_logs (action, actor, details, created_at) VALUES ($1,$2,$3,$4),($5,$6,$7,$8)`,
	)).WithArgs("LOGIN", "admin@ntc.edu", "", at, "CREATE_BOOK", "admin", "Created book: Dune", at).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := st.Audit.AppendAudit(t.Context(), []models.AuditEntry{
		{Action: "LOGIN", User: "admin@ntc.edu", CreatedAt: at},
		{Action: "CREATE_BOOK", User: "admin", Details: "Created book: Dune", CreatedAt: at},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListAuditByAction(t *testing.T) {
	st, mock := newMock(t)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM audit_logs WHERE action = $1`)).
		WithArgs("LOGIN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, action, actor, details, created_at\s+FROM audit_logs\s+WHERE action = \$1\s+ORDER BY created_at DESC, id DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs("LOGIN", 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "actor", "details", "created_at"}).
			AddRow(7, "LOGIN", "admin@ntc.edu", "", at))

	got, total, err := st.Audit.ListAudit(t.Context(), models.AuditFilter{Action: "LOGIN"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("got total=%d rows=%+v", total, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListAuditPageBeyondRange(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM audit_logs`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	got, total, err := st.Audit.ListAudit(t.Context(), models.AuditFilter{Page: 368934881474191034, Size: 25})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if total != 3 || got == nil || len(got) != 0 {
		t.Fatalf("got total=%d rows=%+v", total, got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPruneAudit(t *testing.T) {
	st, mock := newMock(t)
	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM audit_logs WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := st.Audit.PruneAudit(t.Context(), cutoff)
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

package circulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
	"github.com/5w1tchy/library-admin/internal/store/memory"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) set(day string) { c.t = models.MustDate(day).Add(9 * time.Hour) }

type spy struct{ actions []string }

func (s *spy) Record(_ context.Context, action, _ string) { s.actions = append(s.actions, action) }

type fixture struct {
	svc   *Service
	cat   *catalog.Service
	st    store.Stores
	clock *clock
	rec   *spy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New(true)
	c := &clock{}
	c.set("2024-03-10")
	rec := &spy{}
	return &fixture{
		svc:   New(st, rec, c.now),
		cat:   catalog.New(st, nil),
		st:    st,
		clock: c,
		rec:   rec,
	}
}

func ptr[T any](v T) *T { return &v }

func loanCount(t *testing.T, f *fixture) int {
	t.Helper()
	all, err := f.svc.ListLoans(t.Context(), "")
	require.NoError(t, err)
	return len(all)
}

func TestReaderViewsCountLoans(t *testing.T) {
	f := newFixture(t)
	r, err := f.svc.GetReader(t.Context(), "1")
	require.NoError(t, err)
	assert.Equal(t, 1, r.ActiveLoans)
	assert.Equal(t, 2, r.TotalLoans)

	r, err = f.svc.GetReader(t.Context(), "3")
	require.NoError(t, err)
	assert.Zero(t, r.ActiveLoans)
}

func TestDeleteReaderWithActiveLoansIsRejected(t *testing.T) {
	f := newFixture(t)
	before, _ := f.svc.ListReaders(t.Context(), store.Query{})

	err := f.svc.DeleteReader(t.Context(), "1")
	require.ErrorIs(t, err, ErrReaderHasActiveLoans)

	after, _ := f.svc.ListReaders(t.Context(), store.Query{})
	assert.Equal(t, before, after)
	assert.Empty(t, f.rec.actions)
}

func TestDeleteReaderWithoutLoans(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.svc.DeleteReader(t.Context(), "3"))

	after, _ := f.svc.ListReaders(t.Context(), store.Query{})
	assert.Len(t, after, 2)
	for _, r := range after {
		assert.NotEqual(t, "3", r.ID)
	}
}

func TestDeleteReaderAfterReturn(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ReturnLoan(t.Context(), "LN-001")
	require.NoError(t, err)
	assert.NoError(t, f.svc.DeleteReader(t.Context(), "1"))
}

func TestCreateLoanRejectsUnavailableBook(t *testing.T) {
	f := newFixture(t)
	n := loanCount(t, f)

	_, err := f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "1", BookID: "2"})
	require.ErrorIs(t, err, ErrBookNotAvailable)

	var re *models.RuleError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Book not available", re.Title)
	assert.Equal(t, n, loanCount(t, f))
}

func TestCreateLoanAppendsAndReducesAvailability(t *testing.T) {
	f := newFixture(t)
	before, err := f.cat.GetBook(t.Context(), "4")
	require.NoError(t, err)

	v, err := f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "1", BookID: "4"})
	require.NoError(t, err)
	assert.Equal(t, "LN-004", v.ID)
	assert.Equal(t, models.LoanActive, v.Status)
	assert.Equal(t, "2024-03-10", v.BorrowDate.String())
	assert.Equal(t, "2024-03-24", v.DueDate.String())
	assert.Equal(t, "Clean Code", v.BookTitle)
	assert.Equal(t, "Nguyen Van A", v.ReaderName)

	after, err := f.cat.GetBook(t.Context(), "4")
	require.NoError(t, err)
	assert.Equal(t, before.Available-1, after.Available)
	assert.Equal(t, []string{models.ActionLoanCreated}, f.rec.actions)
}

func TestCreateLoanExhaustsLastCopy(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "1", BookID: "3"})
	require.NoError(t, err)
	_, err = f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "1", BookID: "3"})
	require.NoError(t, err)

	_, err = f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "1", BookID: "3"})
	assert.ErrorIs(t, err, ErrBookNotAvailable)

	b, _ := f.cat.GetBook(t.Context(), "3")
	assert.Equal(t, models.BookOutOfStock, b.Status)
}

func TestCreateLoanGuards(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "2", BookID: "4"})
	assert.ErrorIs(t, err, ErrReaderInactive)

	_, err = f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "404", BookID: "4"})
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "reader_id", ve.Fields[0].Field)

	_, err = f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "1", BookID: "4", DueDate: models.MustDate("2024-03-01")})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "due_date", ve.Fields[0].Field)

	_, err = f.svc.CreateLoan(t.Context(), models.LoanRequest{})
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
}

func TestCreateLoanRespectsLimit(t *testing.T) {
	f := newFixture(t)
	cfg := models.DefaultSettings()
	cfg.MaxBooksPerReader = 1
	require.NoError(t, f.st.Settings.PutSettings(t.Context(), cfg))

	_, err := f.svc.CreateLoan(t.Context(), models.LoanRequest{ReaderID: "1", BookID: "4"})
	assert.ErrorIs(t, err, ErrLoanLimitReached)
}

func TestReturnLoanIsIdempotent(t *testing.T) {
	f := newFixture(t)

	v, err := f.svc.ReturnLoan(t.Context(), "LN-001")
	require.NoError(t, err)
	assert.Equal(t, models.LoanReturned, v.Status)
	require.NotNil(t, v.ReturnDate)
	assert.Equal(t, "2024-03-10", v.ReturnDate.String())
	assert.Zero(t, v.Fine)

	n := loanCount(t, f)
	f.clock.set("2024-03-20")
	again, err := f.svc.ReturnLoan(t.Context(), "LN-001")
	require.NoError(t, err)
	assert.Equal(t, models.LoanReturned, again.Status)
	assert.Equal(t, "2024-03-10", again.ReturnDate.String())
	assert.Equal(t, n, loanCount(t, f))
	assert.Equal(t, []string{models.ActionBookReturned}, f.rec.actions)
}

func TestReturnLateLoanChargesFine(t *testing.T) {
	f := newFixture(t)
	v, err := f.svc.ReturnLoan(t.Context(), "LN-002")
	require.NoError(t, err)
	// due 2024-02-15, returned 2024-03-10 (leap year)
	assert.Equal(t, int64(24*1000), v.Fine)
}

func TestReturnUnknownLoan(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ReturnLoan(t.Context(), "LN-999")
	assert.Error(t, err)
}

func TestLoanStatusIsTimeDerived(t *testing.T) {
	f := newFixture(t)
	v, err := f.svc.GetLoan(t.Context(), "LN-001")
	require.NoError(t, err)
	assert.Equal(t, models.LoanActive, v.Status)

	f.clock.set("2024-03-16")
	v, err = f.svc.GetLoan(t.Context(), "LN-001")
	require.NoError(t, err)
	assert.Equal(t, models.LoanOverdue, v.Status)
}

func TestListLoanTabs(t *testing.T) {
	f := newFixture(t)
	ids := func(tab string) []string {
		views, err := f.svc.ListLoans(t.Context(), tab)
		require.NoError(t, err)
		out := []string{}
		for _, v := range views {
			out = append(out, v.ID)
		}
		return out
	}
	assert.Equal(t, []string{"LN-001", "LN-002"}, ids(TabActive))
	assert.Equal(t, []string{"LN-002"}, ids(TabOverdue))
	assert.Equal(t, []string{"LN-003"}, ids(TabHistory))
	assert.Len(t, ids(""), 3)

	_, err := f.svc.ListLoans(t.Context(), "bogus")
	var ve *models.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestCreateReaderDefaults(t *testing.T) {
	f := newFixture(t)
	v, err := f.svc.CreateReader(t.Context(), models.ReaderDraft{Name: ptr("Pham Thi D"), Email: ptr("d@example.com")})
	require.NoError(t, err)
	assert.Equal(t, "RD-2024004", v.CardID)
	assert.Equal(t, models.ReaderActive, v.Status)
	assert.Equal(t, "2024-03-10", v.JoinedDate.String())
	assert.NotEmpty(t, v.ID)

	v2, err := f.svc.CreateReader(t.Context(), models.ReaderDraft{Name: ptr("Vo Van E"), CardID: ptr("CUSTOM-1")})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM-1", v2.CardID)
}

func TestCreateReaderValidation(t *testing.T) {
	f := newFixture(t)
	bad := models.ReaderStatus("Suspended")
	_, err := f.svc.CreateReader(t.Context(), models.ReaderDraft{Name: ptr("X"), Email: ptr("not-an-email"), Status: &bad})
	var ve *models.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
}

func TestUpdateReaderPreservesID(t *testing.T) {
	f := newFixture(t)
	blocked := models.ReaderBlocked
	v, err := f.svc.UpdateReader(t.Context(), "3", models.ReaderDraft{Status: &blocked})
	require.NoError(t, err)
	assert.Equal(t, "3", v.ID)
	assert.Equal(t, "Le Van C", v.Name)
	assert.Equal(t, models.ReaderBlocked, v.Status)
}

func TestListReadersFilterIsAccentInsensitive(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateReader(t.Context(), "1", models.ReaderDraft{Name: ptr("Nguyễn Văn A")})
	require.NoError(t, err)

	got, err := f.svc.ListReaders(t.Context(), store.Query{Text: "nguyen"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestCardIDMustBeUnique(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateReader(t.Context(), models.ReaderDraft{Name: ptr("Dup"), CardID: ptr("RD-2024001")})
	assert.ErrorIs(t, err, ErrCardIDTaken)

	_, err = f.svc.UpdateReader(t.Context(), "3", models.ReaderDraft{CardID: ptr("RD-2024002")})
	assert.ErrorIs(t, err, ErrCardIDTaken)

	readers, err := f.svc.ListReaders(t.Context(), store.Query{})
	require.NoError(t, err)
	require.Len(t, readers, 3)
	held := map[string]int{}
	for _, r := range readers {
		held[r.CardID]++
	}
	assert.Equal(t, 1, held["RD-2024001"])
	assert.Equal(t, 1, held["RD-2024002"])
	assert.Equal(t, "RD-2024003", readers[2].CardID)

	v, err := f.svc.UpdateReader(t.Context(), "1", models.ReaderDraft{CardID: ptr("RD-2024001"), Phone: ptr("0900000000")})
	require.NoError(t, err)
	assert.Equal(t, "0900000000", v.Phone)
}

// Package circulation manages readers and the loans made against books.
package circulation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/5w1tchy/library-admin/internal/audit"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

var (
	ErrBookNotAvailable = &models.RuleError{
		Code:   "book_not_available",
		Title:  "Book not available",
		Detail: "This book is currently out of stock.",
	}
	ErrReaderHasActiveLoans = &models.RuleError{
		Code:   "reader_has_active_loans",
		Title:  "Cannot delete reader",
		Detail: "This reader has active book loans. Please return all books first.",
	}
	ErrReaderInactive = &models.RuleError{
		Code:   "reader_inactive",
		Title:  "Reader cannot borrow",
		Detail: "Only readers with an Active card can borrow books.",
	}
	ErrCardIDTaken = &models.RuleError{
		Code:   "card_id_taken",
		Title:  "Card ID already in use",
		Detail: "Another reader already holds this library card.",
	}
	ErrLoanLimitReached = &models.RuleError{
		Code:   "loan_limit_reached",
		Title:  "Loan limit reached",
		Detail: "This reader already has the maximum number of books on loan.",
	}
)

// Service serializes the check-then-write sequences (loan creation, return,
// reader deletion) so availability and guards are evaluated against a stable state.
type Service struct {
	mu       sync.Mutex
	readers  store.Repository[models.Reader]
	loans    store.Repository[models.Loan]
	books    store.Repository[models.Book]
	settings store.SettingsStore
	rec      audit.Recorder
	now      func() time.Time
}

func New(st store.Stores, rec audit.Recorder, now func() time.Time) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		readers:  st.Readers,
		loans:    st.Loans,
		books:    st.Books,
		settings: st.Settings,
		rec:      rec,
		now:      now,
	}
}

func (s *Service) Today() models.Date { return models.NewDate(s.now()) }

func (s *Service) allLoans(ctx context.Context) ([]models.Loan, error) {
	loans, err := s.loans.List(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

type loanCounts struct {
	open, total int
}

func countByReader(loans []models.Loan) map[string]loanCounts {
	out := make(map[string]loanCounts)
	for _, l := range loans {
		c := out[l.ReaderID]
		c.total++
		if l.Open() {
			c.open++
		}
		out[l.ReaderID] = c
	}
	return out
}

func openForBook(loans []models.Loan, bookID string) int {
	n := 0
	for _, l := range loans {
		if l.BookID == bookID && l.Open() {
			n++
		}
	}
	return n
}

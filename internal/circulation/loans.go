package circulation

import (
	"context"
	"errors"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/led"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

// Loan list tabs.
const (
	TabActive  = "active"
	TabOverdue = "overdue"
	TabHistory = "history"
)

func (s *Service) loanViews(ctx context.Context, loans []models.Loan) ([]models.LoanView, error) {
	readers, err := s.readers.List(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("list readers: %w", err)
	}
	books, err := s.books.List(ctx, store.Query{})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	names := make(map[string]string, len(readers))
	for _, r := range readers {
		names[r.ID] = r.Name
	}
	titles := make(map[string]string, len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
	}
	today := s.Today()
	out := make([]models.LoanView, 0, len(loans))
	for _, l := range loans {
		out = append(out, s.view(l, names, titles, today))
	}
	return out, nil
}

func (s *Service) view(l models.Loan, names, titles map[string]string, today models.Date) models.LoanView {
	v := models.LoanView{Loan: l, ReaderName: names[l.ReaderID], BookTitle: titles[l.BookID], Status: l.StatusOn(today)}
	if v.ReaderName == "" {
		v.ReaderName = models.UnknownName
	}
	if v.BookTitle == "" {
		v.BookTitle = models.UnknownName
	}
	return v
}

// ListLoans returns every loan, or one tab: active (Active and Overdue), overdue, or history.
func (s *Service) ListLoans(ctx context.Context, tab string) ([]models.LoanView, error) {
	loans, err := s.allLoans(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.loanViews(ctx, loans)
	if err != nil {
		return nil, err
	}
	byStatus := led.Partition(views, func(v models.LoanView) string { return string(v.Status) })
	switch tab {
	case "":
		return views, nil
	case TabActive:
		out := make([]models.LoanView, 0, len(views))
		for _, v := range views {
			if v.Status != models.LoanReturned {
				out = append(out, v)
			}
		}
		return out, nil
	case TabOverdue:
		return nonNil(byStatus[string(models.LoanOverdue)]), nil
	case TabHistory:
		return nonNil(byStatus[string(models.LoanReturned)]), nil
	default:
		return nil, models.NewFieldError("tab", "enum", "tab must be one of active, overdue, history")
	}
}

func nonNil(v []models.LoanView) []models.LoanView {
	if v == nil {
		return []models.LoanView{}
	}
	return v
}

func (s *Service) GetLoan(ctx context.Context, id string) (models.LoanView, error) {
	l, err := s.loans.Get(ctx, id)
	if err != nil {
		return models.LoanView{}, err
	}
	views, err := s.loanViews(ctx, []models.Loan{l})
	if err != nil {
		return models.LoanView{}, err
	}
	return views[0], nil
}

// CreateLoan lends a book to a reader. The book must have a free copy; the
// reader must be Active and under the loan limit. A zero due date means
// today plus the configured loan period.
func (s *Service) CreateLoan(ctx context.Context, req models.LoanRequest) (models.LoanView, error) {
	if err := req.Validate(); err != nil {
		return models.LoanView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	reader, err := s.readers.Get(ctx, req.ReaderID)
	if errors.Is(err, led.ErrNotFound) {
		return models.LoanView{}, models.NewFieldError("reader_id", "unknown", "reader does not exist")
	} else if err != nil {
		return models.LoanView{}, err
	}
	book, err := s.books.Get(ctx, req.BookID)
	if errors.Is(err, led.ErrNotFound) {
		return models.LoanView{}, models.NewFieldError("book_id", "unknown", "book does not exist")
	} else if err != nil {
		return models.LoanView{}, err
	}
	cfg, err := s.settings.GetSettings(ctx)
	if err != nil {
		return models.LoanView{}, fmt.Errorf("load settings: %w", err)
	}
	loans, err := s.allLoans(ctx)
	if err != nil {
		return models.LoanView{}, err
	}

	if book.Quantity-openForBook(loans, book.ID) <= 0 {
		return models.LoanView{}, ErrBookNotAvailable
	}
	if reader.Status != models.ReaderActive {
		return models.LoanView{}, ErrReaderInactive
	}
	if cfg.MaxBooksPerReader > 0 && countByReader(loans)[reader.ID].open >= cfg.MaxBooksPerReader {
		return models.LoanView{}, ErrLoanLimitReached
	}

	today := s.Today()
	due := req.DueDate
	if due.IsZero() {
		due = today.AddDays(cfg.LoanPeriodDays)
	}
	if due.Before(today.Time) {
		return models.LoanView{}, models.NewFieldError("due_date", "range", "due date must not be before the borrow date")
	}

	l, err := s.loans.Create(ctx, models.Loan{
		ReaderID:   reader.ID,
		BookID:     book.ID,
		BorrowDate: today,
		DueDate:    due,
	}, nil)
	if err != nil {
		return models.LoanView{}, err
	}
	s.rec.Record(ctx, models.ActionLoanCreated, fmt.Sprintf("Loan %s: %q to %s, due %s", l.ID, book.Title, reader.Name, due))
	return s.view(l, map[string]string{reader.ID: reader.Name}, map[string]string{book.ID: book.Title}, today), nil
}

// ReturnLoan closes the loan today and charges FinePerDay for each day late.
// Returning an already returned loan changes nothing.
func (s *Service) ReturnLoan(ctx context.Context, id string) (models.LoanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loans.Get(ctx, id)
	if err != nil {
		return models.LoanView{}, err
	}
	if l.ReturnDate == nil {
		cfg, err := s.settings.GetSettings(ctx)
		if err != nil {
			return models.LoanView{}, fmt.Errorf("load settings: %w", err)
		}
		today := s.Today()
		fine := int64(l.DaysOverdue(today)) * cfg.FinePerDay
		l, err = s.loans.Update(ctx, id, models.LoanDraft{ReturnDate: &today, Fine: &fine})
		if err != nil {
			return models.LoanView{}, err
		}
		s.rec.Record(ctx, models.ActionBookReturned, fmt.Sprintf("Loan %s returned, fine %d", l.ID, fine))
	}
	views, err := s.loanViews(ctx, []models.Loan{l})
	if err != nil {
		return models.LoanView{}, err
	}
	return views[0], nil
}

// Package reports aggregates catalog and circulation state for the dashboard and reports page.
package reports

import (
	"cmp"
	"context"
	"slices"

	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

type Stats struct {
	Books           int `json:"books"`
	Copies          int `json:"copies"`
	AvailableCopies int `json:"available_copies"`
	Readers         int `json:"readers"`
	ActiveReaders   int `json:"active_readers"`
	ActiveLoans     int `json:"active_loans"`
	OverdueLoans    int `json:"overdue_loans"`
}

type TopBook struct {
	BookID     string `json:"book_id"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	Loans      int    `json:"loans"`
}

type OverdueLoan struct {
	LoanID      string      `json:"loan_id"`
	ReaderName  string      `json:"reader_name"`
	BookTitle   string      `json:"book_title"`
	DueDate     models.Date `json:"due_date"`
	DaysOverdue int         `json:"days_overdue"`
	Fine        int64       `json:"fine"`
}

type Report struct {
	Stats    Stats         `json:"stats"`
	TopBooks []TopBook     `json:"top_books"`
	Overdue  []OverdueLoan `json:"overdue"`
}

const DefaultTopN = 5

type Service struct {
	catalog     *catalog.Service
	circulation *circulation.Service
	settings    store.SettingsStore
	cache       *Cache
}

func New(cat *catalog.Service, circ *circulation.Service, settings store.SettingsStore, cache *Cache) *Service {
	return &Service{catalog: cat, circulation: circ, settings: settings, cache: cache}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if s.cache.get(ctx, "stats", &st) {
		return st, nil
	}
	books, err := s.catalog.ListBooks(ctx, store.Query{})
	if err != nil {
		return Stats{}, err
	}
	readers, err := s.circulation.ListReaders(ctx, store.Query{})
	if err != nil {
		return Stats{}, err
	}
	loans, err := s.circulation.ListLoans(ctx, "")
	if err != nil {
		return Stats{}, err
	}
	st.Books = len(books)
	for _, b := range books {
		st.Copies += b.Quantity
		st.AvailableCopies += b.Available
	}
	st.Readers = len(readers)
	for _, r := range readers {
		if r.Status == models.ReaderActive {
			st.ActiveReaders++
		}
	}
	for _, l := range loans {
		switch l.Status {
		case models.LoanActive:
			st.ActiveLoans++
		case models.LoanOverdue:
			st.ActiveLoans++
			st.OverdueLoans++
		}
	}
	s.cache.set(ctx, "stats", st)
	return st, nil
}

// TopBooks ranks books by how many loans were ever made against them.
func (s *Service) TopBooks(ctx context.Context, n int) ([]TopBook, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	books, err := s.catalog.ListBooks(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	loans, err := s.circulation.ListLoans(ctx, "")
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, l := range loans {
		counts[l.BookID]++
	}
	out := make([]TopBook, 0, len(books))
	for _, b := range books {
		if counts[b.ID] == 0 {
			continue
		}
		out = append(out, TopBook{BookID: b.ID, Title: b.Title, AuthorName: b.AuthorName, Loans: counts[b.ID]})
	}
	slices.SortStableFunc(out, func(a, b TopBook) int { return cmp.Compare(b.Loans, a.Loans) })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Overdue lists open loans past due with the fine accrued so far, most late first.
func (s *Service) Overdue(ctx context.Context) ([]OverdueLoan, error) {
	cfg, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.circulation.ListLoans(ctx, circulation.TabOverdue)
	if err != nil {
		return nil, err
	}
	today := s.circulation.Today()
	out := make([]OverdueLoan, 0, len(loans))
	for _, l := range loans {
		days := l.DaysOverdue(today)
		out = append(out, OverdueLoan{
			LoanID:      l.ID,
			ReaderName:  l.ReaderName,
			BookTitle:   l.BookTitle,
			DueDate:     l.DueDate,
			DaysOverdue: days,
			Fine:        int64(days) * cfg.FinePerDay,
		})
	}
	slices.SortStableFunc(out, func(a, b OverdueLoan) int { return cmp.Compare(b.DaysOverdue, a.DaysOverdue) })
	return out, nil
}

func (s *Service) Report(ctx context.Context) (Report, error) {
	var r Report
	if s.cache.get(ctx, "report", &r) {
		return r, nil
	}
	var err error
	if r.Stats, err = s.Stats(ctx); err != nil {
		return Report{}, err
	}
	if r.TopBooks, err = s.TopBooks(ctx, DefaultTopN); err != nil {
		return Report{}, err
	}
	if r.Overdue, err = s.Overdue(ctx); err != nil {
		return Report{}, err
	}
	s.cache.set(ctx, "report", r)
	return r, nil
}

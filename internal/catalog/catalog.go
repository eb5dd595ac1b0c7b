// Package catalog serves books, authors and categories with their derived counts.
package catalog

import (
	"context"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/audit"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

type Service struct {
	books      store.Repository[models.Book]
	authors    store.Repository[models.Author]
	categories store.Repository[models.Category]
	loans      store.Repository[models.Loan]
	rec        audit.Recorder
}

func New(st store.Stores, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{
		books:      st.Books,
		authors:    st.Authors,
		categories: st.Categories,
		loans:      st.Loans,
		rec:        rec,
	}
}

// lookup is a point-in-time index used to build views.
type lookup struct {
	authorNames   map[string]string
	categoryNames map[string]string
	openLoans     map[string]int // by book id
	byAuthor      map[string]int
	byCategory    map[string]int
}

func (s *Service) snapshot(ctx context.Context, withNames, withLoans, withCounts bool) (*lookup, error) {
	lk := &lookup{
		authorNames:   map[string]string{},
		categoryNames: map[string]string{},
		openLoans:     map[string]int{},
		byAuthor:      map[string]int{},
		byCategory:    map[string]int{},
	}
	if withNames {
		authors, err := s.authors.List(ctx, store.Query{})
		if err != nil {
			return nil, fmt.Errorf("list authors: %w", err)
		}
		for _, a := range authors {
			lk.authorNames[a.ID] = a.Name
		}
		cats, err := s.categories.List(ctx, store.Query{})
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		for _, c := range cats {
			lk.categoryNames[c.ID] = c.Name
		}
	}
	if withLoans {
		loans, err := s.loans.List(ctx, store.Query{})
		if err != nil {
			return nil, fmt.Errorf("list loans: %w", err)
		}
		for _, l := range loans {
			if l.Open() {
				lk.openLoans[l.BookID]++
			}
		}
	}
	if withCounts {
		books, err := s.books.List(ctx, store.Query{})
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		for _, b := range books {
			lk.byAuthor[b.AuthorID]++
			lk.byCategory[b.CategoryID]++
		}
	}
	return lk, nil
}

func (lk *lookup) book(b models.Book) models.BookView {
	return models.NewBookView(b, lk.authorNames[b.AuthorID], lk.categoryNames[b.CategoryID], lk.openLoans[b.ID])
}

// Package search backs the public search page.
package search

import (
	"context"

	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
	"github.com/5w1tchy/library-admin/internal/textmatch"
)

type Service struct {
	catalog *catalog.Service
}

func New(cat *catalog.Service) *Service { return &Service{catalog: cat} }

// Books matches q against title, author name and category name,
// ignoring case and accents. An empty q returns the whole catalog.
func (s *Service) Books(ctx context.Context, q string) ([]models.BookView, error) {
	all, err := s.catalog.ListBooks(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	m := textmatch.NewMatcher(q)
	if m.Empty() {
		return all, nil
	}
	out := make([]models.BookView, 0, len(all))
	for _, b := range all {
		if m.Match(b.SearchText()) {
			out = append(out, b)
		}
	}
	return out, nil
}

package catalog

import (
	"context"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

func (s *Service) ListBooks(ctx context.Context, q store.Query) ([]models.BookView, error) {
	books, err := s.books.List(ctx, q)
	if err != nil {
		return nil, err
	}
	lk, err := s.snapshot(ctx, true, true, false)
	if err != nil {
		return nil, err
	}
	out := make([]models.BookView, 0, len(books))
	for _, b := range books {
		out = append(out, lk.book(b))
	}
	return out, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (models.BookView, error) {
	b, err := s.books.Get(ctx, id)
	if err != nil {
		return models.BookView{}, err
	}
	return s.bookView(ctx, b)
}

func (s *Service) bookView(ctx context.Context, b models.Book) (models.BookView, error) {
	lk, err := s.snapshot(ctx, true, true, false)
	if err != nil {
		return models.BookView{}, err
	}
	return lk.book(b), nil
}

func (s *Service) CreateBook(ctx context.Context, d models.BookDraft) (models.BookView, error) {
	if err := d.Validate(true); err != nil {
		return models.BookView{}, err
	}
	b, err := s.books.Create(ctx, models.NewBook(), d)
	if err != nil {
		return models.BookView{}, err
	}
	s.rec.Record(ctx, models.ActionCreateBook, fmt.Sprintf("Created book: %s", b.Title))
	return s.bookView(ctx, b)
}

func (s *Service) UpdateBook(ctx context.Context, id string, d models.BookDraft) (models.BookView, error) {
	if err := d.Validate(false); err != nil {
		return models.BookView{}, err
	}
	b, err := s.books.Update(ctx, id, d)
	if err != nil {
		return models.BookView{}, err
	}
	s.rec.Record(ctx, models.ActionUpdateBook, fmt.Sprintf("Updated book: %s", b.Title))
	return s.bookView(ctx, b)
}

// SetBookCover stores the cover location; an empty url clears it.
func (s *Service) SetBookCover(ctx context.Context, id, url string) (models.BookView, error) {
	return s.UpdateBook(ctx, id, models.BookDraft{CoverURL: &url})
}

func (s *Service) DeleteBook(ctx context.Context, id string) error {
	var title string
	err := s.books.Delete(ctx, id, func(b models.Book) error {
		title = b.Title
		return nil
	})
	if err != nil {
		return err
	}
	s.rec.Record(ctx, models.ActionDeleteBook, fmt.Sprintf("Deleted book: %s", title))
	return nil
}

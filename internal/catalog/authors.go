package catalog

import (
	"context"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

func (s *Service) ListAuthors(ctx context.Context, q store.Query) ([]models.AuthorView, error) {
	authors, err := s.authors.List(ctx, q)
	if err != nil {
		return nil, err
	}
	lk, err := s.snapshot(ctx, false, false, true)
	if err != nil {
		return nil, err
	}
	out := make([]models.AuthorView, 0, len(authors))
	for _, a := range authors {
		out = append(out, models.AuthorView{Author: a, BooksCount: lk.byAuthor[a.ID]})
	}
	return out, nil
}

func (s *Service) GetAuthor(ctx context.Context, id string) (models.AuthorView, error) {
	a, err := s.authors.Get(ctx, id)
	if err != nil {
		return models.AuthorView{}, err
	}
	return s.authorView(ctx, a)
}

func (s *Service) authorView(ctx context.Context, a models.Author) (models.AuthorView, error) {
	lk, err := s.snapshot(ctx, false, false, true)
	if err != nil {
		return models.AuthorView{}, err
	}
	return models.AuthorView{Author: a, BooksCount: lk.byAuthor[a.ID]}, nil
}

func (s *Service) CreateAuthor(ctx context.Context, d models.AuthorDraft) (models.AuthorView, error) {
	if err := d.Validate(true); err != nil {
		return models.AuthorView{}, err
	}
	a, err := s.authors.Create(ctx, models.Author{}, d)
	if err != nil {
		return models.AuthorView{}, err
	}
	s.rec.Record(ctx, models.ActionCreateAuthor, fmt.Sprintf("Created author: %s", a.Name))
	return models.AuthorView{Author: a}, nil
}

func (s *Service) UpdateAuthor(ctx context.Context, id string, d models.AuthorDraft) (models.AuthorView, error) {
	if err := d.Validate(false); err != nil {
		return models.AuthorView{}, err
	}
	a, err := s.authors.Update(ctx, id, d)
	if err != nil {
		return models.AuthorView{}, err
	}
	s.rec.Record(ctx, models.ActionUpdateAuthor, fmt.Sprintf("Updated author: %s", a.Name))
	return s.authorView(ctx, a)
}

// DeleteAuthor does not touch the author's books; they show as "Unknown" afterwards.
func (s *Service) DeleteAuthor(ctx context.Context, id string) error {
	var name string
	if err := s.authors.Delete(ctx, id, func(a models.Author) error { name = a.Name; return nil }); err != nil {
		return err
	}
	s.rec.Record(ctx, models.ActionDeleteAuthor, fmt.Sprintf("Deleted author: %s", name))
	return nil
}

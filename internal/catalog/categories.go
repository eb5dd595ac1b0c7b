package catalog

import (
	"context"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

func (s *Service) ListCategories(ctx context.Context, q store.Query) ([]models.CategoryView, error) {
	cats, err := s.categories.List(ctx, q)
	if err != nil {
		return nil, err
	}
	lk, err := s.snapshot(ctx, false, false, true)
	if err != nil {
		return nil, err
	}
	out := make([]models.CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, models.CategoryView{Category: c, Count: lk.byCategory[c.ID]})
	}
	return out, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (models.CategoryView, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return models.CategoryView{}, err
	}
	lk, err := s.snapshot(ctx, false, false, true)
	if err != nil {
		return models.CategoryView{}, err
	}
	return models.CategoryView{Category: c, Count: lk.byCategory[c.ID]}, nil
}

func (s *Service) CreateCategory(ctx context.Context, d models.CategoryDraft) (models.CategoryView, error) {
	if err := d.Validate(true); err != nil {
		return models.CategoryView{}, err
	}
	c, err := s.categories.Create(ctx, models.Category{}, d)
	if err != nil {
		return models.CategoryView{}, err
	}
	s.rec.Record(ctx, models.ActionCreateCategory, fmt.Sprintf("Created category: %s", c.Name))
	return models.CategoryView{Category: c}, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, d models.CategoryDraft) (models.CategoryView, error) {
	if err := d.Validate(false); err != nil {
		return models.CategoryView{}, err
	}
	if _, err := s.categories.Update(ctx, id, d); err != nil {
		return models.CategoryView{}, err
	}
	v, err := s.GetCategory(ctx, id)
	if err != nil {
		return models.CategoryView{}, err
	}
	s.rec.Record(ctx, models.ActionUpdateCategory, fmt.Sprintf("Updated category: %s", v.Name))
	return v, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	var name string
	if err := s.categories.Delete(ctx, id, func(c models.Category) error { name = c.Name; return nil }); err != nil {
		return err
	}
	s.rec.Record(ctx, models.ActionDeleteCategory, fmt.Sprintf("Deleted category: %s", name))
	return nil
}

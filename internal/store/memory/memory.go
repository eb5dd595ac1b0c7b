// Package memory keeps every repository in process, seeded from the demo data set.
package memory

import (
	"context"

	"github.com/5w1tchy/library-admin/internal/led"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
	"github.com/5w1tchy/library-admin/internal/store/seed"
	"github.com/5w1tchy/library-admin/internal/textmatch"
)

// Repo adapts a led.Collection to store.Repository.
type Repo[T led.Keyed[T]] struct {
	c *led.Collection[T]
	// text returns the column the list filter searches; nil disables filtering.
	text func(T) string
}

func NewRepo[T led.Keyed[T]](ids led.IDGenerator, items []T, text func(T) string) *Repo[T] {
	return &Repo[T]{c: led.New(ids, items), text: text}
}

func (r *Repo[T]) List(_ context.Context, q store.Query) ([]T, error) {
	m := textmatch.NewMatcher(q.Text)
	if r.text == nil || m.Empty() {
		return r.c.List(), nil
	}
	return r.c.Filter(func(it T) bool { return m.Match(r.text(it)) }), nil
}

func (r *Repo[T]) Get(_ context.Context, id string) (T, error) {
	return r.c.Get(id)
}

func (r *Repo[T]) Create(_ context.Context, base T, d led.Draft[T]) (T, error) {
	return r.c.Create(base, d)
}

func (r *Repo[T]) Update(_ context.Context, id string, d led.Draft[T]) (T, error) {
	return r.c.Update(id, d)
}

func (r *Repo[T]) Delete(_ context.Context, id string, guard led.Guard[T]) error {
	return r.c.Delete(id, guard)
}

// New returns an in-memory backend. With seeded set it starts from the demo data.
func New(seeded bool) store.Stores {
	var (
		authors    []models.Author
		categories []models.Category
		books      []models.Book
		readers    []models.Reader
		loans      []models.Loan
	)
	if seeded {
		authors, categories, books = seed.Authors(), seed.Categories(), seed.Books()
		readers, loans = seed.Readers(), seed.Loans()
	}
	return store.Stores{
		Authors:    NewRepo(led.UUIDs{}, authors, func(a models.Author) string { return a.Name }),
		Categories: NewRepo(led.UUIDs{}, categories, func(c models.Category) string { return c.Name }),
		Books:      NewRepo(led.UUIDs{}, books, func(b models.Book) string { return b.Title }),
		Readers:    NewRepo(led.UUIDs{}, readers, func(r models.Reader) string { return r.Name }),
		Loans:      NewRepo[models.Loan](led.NewSequence("LN-", 3), loans, nil),
		Settings:   NewSettings(models.DefaultSettings()),
		Audit:      NewAudit(),
	}
}

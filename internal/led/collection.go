// Package led implements the List-Edit-Delete collection shared by every admin resource.
package led

import (
	"errors"
	"slices"
	"sync"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrIDExhausted = errors.New("could not generate a unique id")
	ErrDuplicateID = errors.New("duplicate id")
)

// MaxIDAttempts bounds retries when a generated id is already taken.
const MaxIDAttempts = 16

// Keyed is a record with an identifier that can be replaced.
type Keyed[T any] interface {
	Key() string
	WithKey(id string) T
}

// Draft is an in-progress edit. Apply overwrites only the fields it carries.
type Draft[T any] interface {
	Apply(*T)
}

// Guard vetoes a delete by returning an error.
type Guard[T any] func(T) error

// Collection is an ordered, concurrency-safe list of records.
type Collection[T Keyed[T]] struct {
	mu    sync.RWMutex
	items []T
	ids   IDGenerator
}

func New[T Keyed[T]](ids IDGenerator, seed []T) *Collection[T] {
	if ids == nil {
		ids = UUIDs{}
	}
	if seq, ok := ids.(*Sequence); ok {
		for _, it := range seed {
			seq.Observe(it.Key())
		}
	}
	return &Collection[T]{items: slices.Clone(seed), ids: ids}
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// List returns a snapshot in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.index(id); i >= 0 {
		return c.items[i], nil
	}
	var zero T
	return zero, ErrNotFound
}

// Create applies d over base, assigns a fresh identifier and appends.
func (c *Collection[T]) Create(base T, d Draft[T]) (T, error) {
	if d != nil {
		d.Apply(&base)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for range MaxIDAttempts {
		id := c.ids.Next()
		if c.index(id) >= 0 {
			continue
		}
		rec := base.WithKey(id)
		c.items = append(c.items, rec)
		return rec, nil
	}
	var zero T
	return zero, ErrIDExhausted
}

// Insert appends a record that already carries an identifier.
func (c *Collection[T]) Insert(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index(rec.Key()) >= 0 {
		return ErrDuplicateID
	}
	if seq, ok := c.ids.(*Sequence); ok {
		seq.Observe(rec.Key())
	}
	c.items = append(c.items, rec)
	return nil
}

// Update applies d to the stored record. The identifier never changes.
func (c *Collection[T]) Update(id string, d Draft[T]) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, ErrNotFound
	}
	rec := c.items[i]
	if d != nil {
		d.Apply(&rec)
	}
	rec = rec.WithKey(id)
	c.items[i] = rec
	return rec, nil
}

// Delete removes the record after guard approves it. A guard error leaves the list unchanged.
func (c *Collection[T]) Delete(id string, guard Guard[T]) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	if guard != nil {
		if err := guard(c.items[i]); err != nil {
			return err
		}
	}
	c.items = slices.Delete(c.items, i, i+1)
	return nil
}

func (c *Collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.Key() == id })
}

// Partition groups items by key, keeping their relative order.
func Partition[T any](items []T, key func(T) string) map[string][]T {
	out := make(map[string][]T)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}

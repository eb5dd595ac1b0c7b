// Package store defines the repositories every service consumes.
package store

import (
	"context"
	"time"

	"github.com/5w1tchy/library-admin/internal/led"
	"github.com/5w1tchy/library-admin/internal/models"
)

// Query narrows a list. Text is matched against the entity's filter column.
type Query struct {
	Text string
}

type Repository[T any] interface {
	List(ctx context.Context, q Query) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Create applies d over base and stores the result under a fresh id.
	Create(ctx context.Context, base T, d led.Draft[T]) (T, error)
	// Update applies d to the stored record; the id is preserved.
	Update(ctx context.Context, id string, d led.Draft[T]) (T, error)
	// Delete removes the record if guard (when non-nil) allows it.
	Delete(ctx context.Context, id string, guard led.Guard[T]) error
}

type SettingsStore interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	PutSettings(ctx context.Context, s models.Settings) error
}

type AuditStore interface {
	AppendAudit(ctx context.Context, entries []models.AuditEntry) error
	ListAudit(ctx context.Context, f models.AuditFilter) ([]models.AuditEntry, int, error)
	PruneAudit(ctx context.Context, before time.Time) (int64, error)
}

// Stores bundles one backend's repositories.
type Stores struct {
	Authors    Repository[models.Author]
	Categories Repository[models.Category]
	Books      Repository[models.Book]
	Readers    Repository[models.Reader]
	Loans      Repository[models.Loan]
	Settings   SettingsStore
	Audit      AuditStore
}

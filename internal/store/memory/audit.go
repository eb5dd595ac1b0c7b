package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/5w1tchy/library-admin/internal/models"
)

// Audit keeps entries in arrival order and lists them newest first.
type Audit struct {
	mu      sync.RWMutex
	entries []models.AuditEntry
	nextID  int64
}

func NewAudit() *Audit { return &Audit{} }

func (a *Audit) AppendAudit(_ context.Context, entries []models.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, e := range entries {
		a.nextID++
		e.ID = a.nextID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now().UTC()
		}
		a.entries = append(a.entries, e)
	}
	return nil
}

func (a *Audit) ListAudit(_ context.Context, f models.AuditFilter) ([]models.AuditEntry, int, error) {
	a.mu.RLock()
	matched := make([]models.AuditEntry, 0, len(a.entries))
	for _, e := range a.entries {
		if f.Action == "" || e.Action == f.Action {
			matched = append(matched, e)
		}
	}
	a.mu.RUnlock()

	slices.Reverse(matched)
	total := len(matched)
	if f.Page < 1 || f.Size < 1 {
		return matched, total, nil
	}
	start, ok := f.Offset()
	if !ok || start < 0 || start >= total {
		return []models.AuditEntry{}, total, nil
	}
	end := min(start+f.Size, total)
	return matched[start:end], total, nil
}

func (a *Audit) PruneAudit(_ context.Context, before time.Time) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.entries)
	a.entries = slices.DeleteFunc(a.entries, func(e models.AuditEntry) bool {
		return e.CreatedAt.Before(before)
	})
	return int64(n - len(a.entries)), nil
}

// Package settings reads and edits the library-wide configuration.
package settings

import (
	"context"
	"fmt"

	"github.com/5w1tchy/library-admin/internal/audit"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

type Service struct {
	st    store.SettingsStore
	audit store.AuditStore
	rec   audit.Recorder
}

func New(st store.SettingsStore, log store.AuditStore, rec audit.Recorder) *Service {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{st: st, audit: log, rec: rec}
}

func (s *Service) Get(ctx context.Context) (models.Settings, error) {
	return s.st.GetSettings(ctx)
}

// Update applies the submitted fields over the current settings.
func (s *Service) Update(ctx context.Context, d models.SettingsDraft) (models.Settings, error) {
	if err := d.Validate(); err != nil {
		return models.Settings{}, err
	}
	cur, err := s.st.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	d.Apply(&cur)
	if err := s.st.PutSettings(ctx, cur); err != nil {
		return models.Settings{}, err
	}
	s.rec.Record(ctx, models.ActionSettingsUpdate,
		fmt.Sprintf("Settings: name=%q fine=%d max=%d period=%d", cur.LibraryName, cur.FinePerDay, cur.MaxBooksPerReader, cur.LoanPeriodDays))
	return cur, nil
}

// Logs lists audit entries newest first.
func (s *Service) Logs(ctx context.Context, f models.AuditFilter) ([]models.AuditEntry, int, error) {
	return s.audit.ListAudit(ctx, f)
}

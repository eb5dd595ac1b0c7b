package admin

import (
	"github.com/5w1tchy/library-admin/internal/audit"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/export"
	"github.com/5w1tchy/library-admin/internal/reports"
	"github.com/5w1tchy/library-admin/internal/settings"
)

// Handler serves the dashboard, reports, settings, logs and export pages.
type Handler struct {
	Reports  *reports.Service
	Settings *settings.Service
	Export   *export.Exporter
	Circ     *circulation.Service
	Rec      audit.Recorder
}

func NewHandler(rp *reports.Service, st *settings.Service, ex *export.Exporter, circ *circulation.Service, rec audit.Recorder) *Handler {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Handler{Reports: rp, Settings: st, Export: ex, Circ: circ, Rec: rec}
}

package admin

import (
	"net/http"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
)

// GET /admin/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Reports.Stats(r.Context())
	if err != nil {
		apperr.Handle(w, r, err)
		return
	}
	httpx.OK(w, stats)
}

// GET /admin/reports
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Reports.Report(r.Context())
	if err != nil {
		apperr.Handle(w, r, err)
		return
	}
	httpx.OK(w, rep)
}

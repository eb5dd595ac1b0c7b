package admin

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
	"github.com/5w1tchy/library-admin/internal/models"
)

const defaultLogSize = 25

// GET /admin/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Get(r.Context())
	if err != nil {
		apperr.Handle(w, r, err)
		return
	}
	httpx.OK(w, s)
}

// PUT /admin/settings
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var d models.SettingsDraft
	if err := httpx.DecodeJSON(r, &d); err != nil {
		apperr.Handle(w, r, err)
		return
	}
	s, err := h.Settings.Update(r.Context(), d)
	if err != nil {
		apperr.Handle(w, r, err)
		return
	}
	httpx.OK(w, s)
}

// GET /admin/settings/logs?action=&page=&size=
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	page := httpx.QueryInt(r, "page", 1)
	size := min(httpx.QueryInt(r, "size", defaultLogSize), 100)

	f := models.AuditFilter{
		Action: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("action"))),
		Page:   page,
		Size:   size,
	}
	items, total, err := h.Settings.Logs(r.Context(), f)
	if err != nil {
		apperr.Handle(w, r, err)
		return
	}
	httpx.Page(w, items, total, page, size)
}

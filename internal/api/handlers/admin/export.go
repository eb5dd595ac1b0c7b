package admin

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/export"
	"github.com/5w1tchy/library-admin/internal/models"
)

// GET /admin/export/{type}
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("type")
	if kind != export.Books && kind != export.Readers {
		apperr.WriteStatus(w, r, http.StatusNotFound, "Not Found",
			fmt.Sprintf("unknown export type %q; use books or readers", kind))
		return
	}

	// Buffer so a mid-stream failure still yields a proper error response.
	var buf bytes.Buffer
	n, err := h.Export.Write(r.Context(), kind, &buf)
	if err != nil {
		apperr.Handle(w, r, err)
		return
	}

	name := export.Filename(kind, h.Circ.Today())
	h.Rec.Record(r.Context(), models.ActionExport, fmt.Sprintf("Exported %d %s to %s", n, kind, name))
	log.Printf("[export] %s: %d rows", kind, n)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

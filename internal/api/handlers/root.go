package handlers

import (
	"net/http"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
)

// GET /
func Root(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			apperr.WriteStatus(w, r, http.StatusNotFound, "Not Found", "")
			return
		}
		httpx.OK(w, map[string]string{"service": name, "admin": "/admin"})
	})
}

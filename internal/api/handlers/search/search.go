package search

import (
	"net/http"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
	"github.com/5w1tchy/library-admin/internal/search"
)

const maxQueryLen = 200

// GET /search?q=
func Books(svc *search.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if len([]rune(q)) > maxQueryLen {
			q = string([]rune(q)[:maxQueryLen])
		}
		items, err := svc.Books(r.Context(), q)
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.List(w, items)
	})
}

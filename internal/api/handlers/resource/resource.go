// Package resource exposes a list/get/create/edit/delete collection over HTTP.
package resource

import (
	"context"
	"net/http"
	"strings"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
	"github.com/5w1tchy/library-admin/internal/store"
)

// Resource binds one catalog or circulation collection. V is the view
// returned to clients, D the draft decoded from request bodies.
type Resource[V, D any] struct {
	List   func(ctx context.Context, q store.Query) ([]V, error)
	Get    func(ctx context.Context, id string) (V, error)
	Create func(ctx context.Context, d D) (V, error)
	Update func(ctx context.Context, id string, d D) (V, error)
	Delete func(ctx context.Context, id string) error
}

// GET /admin/{kind}?q=
func (res Resource[V, D]) ListHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := store.Query{Text: strings.TrimSpace(r.URL.Query().Get("q"))}
		items, err := res.List(r.Context(), q)
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.List(w, items)
	})
}

// GET /admin/{kind}/{id}
func (res Resource[V, D]) GetHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := res.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.OK(w, v)
	})
}

// POST /admin/{kind}
func (res Resource[V, D]) CreateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var d D
		if err := httpx.DecodeJSON(r, &d); err != nil {
			apperr.Handle(w, r, err)
			return
		}
		v, err := res.Create(r.Context(), d)
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.Created(w, v)
	})
}

// PATCH and PUT /admin/{kind}/{id}. Drafts only carry the fields that were
// sent, so both verbs merge into the stored record.
func (res Resource[V, D]) UpdateHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var d D
		if err := httpx.DecodeJSON(r, &d); err != nil {
			apperr.Handle(w, r, err)
			return
		}
		v, err := res.Update(r.Context(), r.PathValue("id"), d)
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.OK(w, v)
	})
}

// DELETE /admin/{kind}/{id}
func (res Resource[V, D]) DeleteHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := res.Delete(r.Context(), r.PathValue("id")); err != nil {
			apperr.Handle(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// Mount registers the five routes under prefix, e.g. "/admin/books".
func (res Resource[V, D]) Mount(mux *http.ServeMux, prefix string) {
	mux.Handle("GET "+prefix, res.ListHandler())
	mux.Handle("POST "+prefix, res.CreateHandler())
	mux.Handle("GET "+prefix+"/{id}", res.GetHandler())
	mux.Handle("PATCH "+prefix+"/{id}", res.UpdateHandler())
	mux.Handle("PUT "+prefix+"/{id}", res.UpdateHandler())
	mux.Handle("DELETE "+prefix+"/{id}", res.DeleteHandler())
}

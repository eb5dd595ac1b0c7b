package router

import (
	"net/http"

	"github.com/5w1tchy/library-admin/internal/api/handlers"
	"github.com/5w1tchy/library-admin/internal/api/handlers/books"
	"github.com/5w1tchy/library-admin/internal/api/handlers/search"
	"github.com/5w1tchy/library-admin/internal/api/middlewares"
	"github.com/5w1tchy/library-admin/internal/auth"
	"github.com/5w1tchy/library-admin/internal/catalog"
	searchsvc "github.com/5w1tchy/library-admin/internal/search"
)

// Deps is everything the routes need. Covers is nil when no bucket is
// configured.
type Deps struct {
	Name    string
	Catalog *catalog.Service
	Search  *searchsvc.Service
	Auth    *auth.Handler
	Covers  books.ObjectStore
	Admin   AdminDeps

	LoginLimit middlewares.Middleware
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /", handlers.Root(d.Name))
	mux.Handle("GET /search", search.Books(d.Search))
	mux.Handle("GET /books/{id}/cover", books.CoverURL(d.Catalog, d.Covers))

	login := http.Handler(http.HandlerFunc(d.Auth.Login))
	if d.LoginLimit != nil {
		login = d.LoginLimit(login)
	}
	mux.Handle("POST /auth/login", login)

	MountAdmin(mux, d)
	return mux
}

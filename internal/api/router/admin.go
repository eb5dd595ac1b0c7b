package router

import (
	"net/http"

	"github.com/5w1tchy/library-admin/internal/api/handlers/admin"
	"github.com/5w1tchy/library-admin/internal/api/handlers/books"
	"github.com/5w1tchy/library-admin/internal/api/handlers/loans"
	"github.com/5w1tchy/library-admin/internal/api/handlers/resource"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/models"
)

type AdminDeps struct {
	Circulation *circulation.Service
	Handler     *admin.Handler
}

// MountAdmin wires the /admin/* pages. There is no session gate; login only
// checks credentials.
func MountAdmin(mux *http.ServeMux, d Deps) {
	cat, circ := d.Catalog, d.Admin.Circulation

	resource.Resource[models.BookView, models.BookDraft]{
		List: cat.ListBooks, Get: cat.GetBook,
		Create: cat.CreateBook, Update: cat.UpdateBook, Delete: cat.DeleteBook,
	}.Mount(mux, "/admin/books")
	mux.Handle("POST /admin/books/{id}/cover", books.UploadCover(cat, d.Covers))

	resource.Resource[models.AuthorView, models.AuthorDraft]{
		List: cat.ListAuthors, Get: cat.GetAuthor,
		Create: cat.CreateAuthor, Update: cat.UpdateAuthor, Delete: cat.DeleteAuthor,
	}.Mount(mux, "/admin/authors")

	resource.Resource[models.CategoryView, models.CategoryDraft]{
		List: cat.ListCategories, Get: cat.GetCategory,
		Create: cat.CreateCategory, Update: cat.UpdateCategory, Delete: cat.DeleteCategory,
	}.Mount(mux, "/admin/categories")

	resource.Resource[models.ReaderView, models.ReaderDraft]{
		List: circ.ListReaders, Get: circ.GetReader,
		Create: circ.CreateReader, Update: circ.UpdateReader, Delete: circ.DeleteReader,
	}.Mount(mux, "/admin/readers")

	mux.Handle("GET /admin/loans", loans.List(circ))
	mux.Handle("POST /admin/loans", loans.Create(circ))
	mux.Handle("GET /admin/loans/{id}", loans.Get(circ))
	mux.Handle("POST /admin/loans/{id}/return", loans.Return(circ))

	h := d.Admin.Handler
	mux.HandleFunc("GET /admin/stats", h.Stats)
	mux.HandleFunc("GET /admin/reports", h.Report)
	mux.HandleFunc("GET /admin/settings", h.GetSettings)
	mux.HandleFunc("PUT /admin/settings", h.PutSettings)
	mux.HandleFunc("GET /admin/settings/logs", h.Logs)
	mux.HandleFunc("GET /admin/export/{type}", h.ExportCSV)
}

package books

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"time"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/models"
)

const maxCoverSize = 10 << 20

var coverExt = map[string]string{
	"image/webp": ".webp",
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ObjectStore is the bucket the covers live in.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// POST /admin/books/{id}/cover
func UploadCover(cat *catalog.Service, objects ObjectStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if objects == nil {
			apperr.WriteStatus(w, r, http.StatusNotImplemented, "Cover storage is not configured", "")
			return
		}
		ctx := r.Context()
		id := r.PathValue("id")

		if _, err := cat.GetBook(ctx, id); err != nil {
			apperr.Handle(w, r, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxCoverSize+1<<20)
		if err := r.ParseMultipartForm(maxCoverSize); err != nil {
			apperr.Handle(w, r, models.NewFieldError("cover", "invalid", "failed to parse form: "+err.Error()))
			return
		}
		file, header, err := r.FormFile("cover")
		if err != nil {
			apperr.Handle(w, r, models.NewFieldError("cover", "required", "missing cover file"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		ext, ok := coverExt[contentType]
		if !ok {
			apperr.Handle(w, r, models.NewFieldError("cover", "invalid", "invalid image type, must be webp, jpeg, or png"))
			return
		}
		if header.Size > maxCoverSize {
			apperr.Handle(w, r, models.NewFieldError("cover", "too_large", "cover must be at most 10 MiB"))
			return
		}

		key := path.Join("books/covers", fmt.Sprintf("%s-%d%s", id, time.Now().Unix(), ext))
		if err := objects.Put(ctx, key, file, contentType, header.Size); err != nil {
			log.Printf("[covers] upload %s: %v", key, err)
			apperr.WriteStatus(w, r, http.StatusBadGateway, "Cover upload failed", "")
			return
		}

		view, err := cat.SetBookCover(ctx, id, key)
		if err != nil {
			if derr := objects.Delete(ctx, key); derr != nil {
				log.Printf("[covers] cleanup %s: %v", key, derr)
			}
			apperr.Handle(w, r, err)
			return
		}
		httpx.OK(w, view)
	})
}

// GET /books/{id}/cover redirects to a presigned URL for the stored cover.
func CoverURL(cat *catalog.Service, objects ObjectStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if objects == nil {
			apperr.WriteStatus(w, r, http.StatusNotImplemented, "Cover storage is not configured", "")
			return
		}
		b, err := cat.GetBook(r.Context(), r.PathValue("id"))
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		if b.CoverURL == nil || *b.CoverURL == "" {
			apperr.WriteStatus(w, r, http.StatusNotFound, "Not Found", "book has no cover")
			return
		}
		url, err := objects.PresignGet(r.Context(), *b.CoverURL)
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		http.Redirect(w, r, url, http.StatusTemporaryRedirect)
	})
}

package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/5w1tchy/library-admin/internal/models"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data})
}

func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, map[string]any{"status": "success", "data": data})
}

// List writes a collection; an empty result is [] rather than null.
func List[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "count": len(items), "data": items})
}

func Page[T any](w http.ResponseWriter, items []T, total, page, size int) {
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success", "data": items, "total": total, "page": page, "size": size,
	})
}

// DecodeJSON reads a single JSON object into dst, rejecting unknown fields.
// Syntax and type problems come back as *models.ValidationError.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var (
			syn *json.SyntaxError
			typ *json.UnmarshalTypeError
			mbe *http.MaxBytesError
		)
		switch {
		case errors.Is(err, io.EOF):
			return models.NewFieldError("body", "required", "request body is empty")
		case errors.As(err, &syn):
			return models.NewFieldError("body", "invalid", fmt.Sprintf("malformed JSON at offset %d", syn.Offset))
		case errors.As(err, &typ):
			return models.NewFieldError(typ.Field, "invalid", "wrong type for "+typ.Field)
		case errors.As(err, &mbe):
			return models.NewFieldError("body", "too_large", "request body too large")
		default:
			return models.NewFieldError("body", "invalid", err.Error())
		}
	}
	if dec.More() {
		return models.NewFieldError("body", "invalid", "body must contain a single JSON object")
	}
	return nil
}

// QueryInt reads a positive integer query parameter, falling back to def.
func QueryInt(r *http.Request, key string, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > 0 {
		return v
	}
	return def
}

package apperr

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/5w1tchy/library-admin/internal/led"
	"github.com/5w1tchy/library-admin/internal/models"
)

// Handle writes the Problem that matches err. Unrecognised errors are
// logged with the request id and reported as a bare 500.
func Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	var (
		ve *models.ValidationError
		re *models.RuleError
	)
	switch {
	case errors.As(err, &ve):
		Validation(w, r, ve)
	case errors.As(err, &re):
		Write(w, r, Problem{Type: "urn:library:" + re.Code, Status: http.StatusConflict, Title: re.Title, Detail: re.Detail})
	case errors.Is(err, led.ErrNotFound):
		WriteStatus(w, r, http.StatusNotFound, "Not Found", "")
	case errors.Is(err, context.DeadlineExceeded):
		Write(w, r, Problem{Status: http.StatusServiceUnavailable, Title: "Timed out", Retryable: true})
	default:
		if p, ok := FromPG(err); ok {
			if p.Status >= 500 {
				log.Printf("[db] %s %s rid=%s: %v", r.Method, r.URL.Path, r.Header.Get("X-Request-ID"), err)
			}
			Write(w, r, p)
			return
		}
		log.Printf("[error] %s %s rid=%s: %v", r.Method, r.URL.Path, r.Header.Get("X-Request-ID"), err)
		WriteStatus(w, r, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

package loans

import (
	"net/http"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/models"
)

// GET /admin/loans?tab=active|overdue|history
func List(svc *circulation.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListLoans(r.Context(), r.URL.Query().Get("tab"))
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.List(w, items)
	})
}

// GET /admin/loans/{id}
func Get(svc *circulation.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetLoan(r.Context(), r.PathValue("id"))
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.OK(w, v)
	})
}

// POST /admin/loans
func Create(svc *circulation.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.LoanRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			apperr.Handle(w, r, err)
			return
		}
		v, err := svc.CreateLoan(r.Context(), req)
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.Created(w, v)
	})
}

// POST /admin/loans/{id}/return
func Return(svc *circulation.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.ReturnLoan(r.Context(), r.PathValue("id"))
		if err != nil {
			apperr.Handle(w, r, err)
			return
		}
		httpx.OK(w, v)
	})
}

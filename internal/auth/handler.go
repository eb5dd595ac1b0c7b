package auth

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/5w1tchy/library-admin/internal/api/apperr"
	"github.com/5w1tchy/library-admin/internal/api/httpx"
	"github.com/5w1tchy/library-admin/internal/audit"
	"github.com/5w1tchy/library-admin/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Redirect string `json:"redirect"`
}

type Handler struct {
	Checker *Checker
	Rec     audit.Recorder
}

func NewHandler(c *Checker, rec audit.Recorder) *Handler {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Handler{Checker: c, Rec: rec}
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apperr.Handle(w, r, err)
		return
	}
	ve := &models.ValidationError{}
	if strings.TrimSpace(req.Email) == "" {
		ve.Fields = append(ve.Fields, models.FieldError{Field: "email", Code: "required", Message: "Email is required"})
	}
	if req.Password == "" {
		ve.Fields = append(ve.Fields, models.FieldError{Field: "password", Code: "required", Message: "Password is required"})
	}
	if len(ve.Fields) > 0 {
		apperr.Handle(w, r, ve)
		return
	}

	err := h.Checker.Check(req.Email, req.Password)
	switch {
	case errors.Is(err, ErrNotConfigured):
		log.Printf("[auth] login attempted but ADMIN_EMAIL/ADMIN_PASSWORD are unset")
		apperr.WriteStatus(w, r, http.StatusServiceUnavailable, "System error: Admin credentials are not configured", "")
		return
	case errors.Is(err, ErrInvalidCredentials):
		apperr.WriteStatus(w, r, http.StatusUnauthorized, "Invalid email or password", "")
		return
	case err != nil:
		apperr.Handle(w, r, err)
		return
	}

	ctx := audit.WithUser(r.Context(), req.Email)
	h.Rec.Record(ctx, models.ActionLogin, fmt.Sprintf("Admin %s logged in", req.Email))
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{Redirect: "/admin"})
}

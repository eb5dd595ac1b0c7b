package models

import (
	"net/mail"
	"strconv"
	"strings"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError collects field errors from a draft.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, code, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: msg})
}

func (e *ValidationError) required(field string) {
	e.add(field, "required", field+" is required")
}

// err returns nil when nothing was collected so callers can `return v.err()`.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// checkRequired flags a field that is missing on create or blank on either path.
func (e *ValidationError) checkRequired(field string, v *string, create bool) {
	if v == nil {
		if create {
			e.required(field)
		}
		return
	}
	if strings.TrimSpace(*v) == "" {
		e.required(field)
	}
}

// SanitizeString trims and collapses inner whitespace.
func SanitizeString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sanitize(p *string) {
	if p != nil {
		*p = SanitizeString(*p)
	}
}

func validEmail(s string) bool {
	if s == "" {
		return true
	}
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// parseQuantity accepts a JSON number or a numeric string.
func parseQuantity(raw []byte) (int, bool) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// RuleError is a business-rule rejection shown to the user as a title and a detail line.
type RuleError struct {
	Code   string
	Title  string
	Detail string
}

func (e *RuleError) Error() string { return e.Title }

// NewFieldError builds a single-field validation error.
func NewFieldError(field, code, msg string) *ValidationError {
	v := &ValidationError{}
	v.add(field, code, msg)
	return v
}

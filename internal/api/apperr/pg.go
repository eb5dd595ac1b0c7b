package apperr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Map well-known constraint names to fields (extend as you add constraints)
var constraintField = map[string]string{
	"readers_card_id_key":         "card_id",
	"readers_status_check":        "status",
	"books_quantity_check":        "quantity",
	"books_title_check":           "title",
	"authors_name_check":          "name",
	"categories_name_check":       "name",
	"readers_name_check":          "name",
	"settings_fine_per_day_check": "fine_per_day",
}

// Guess a field from a column name present in PG error detail
func fieldFromDetail(detail string) string {
	for _, k := range []string{"card_id", "author_id", "category_id", "book_id", "reader_id", "title", "name", "id"} {
		if strings.Contains(detail, k) {
			return k
		}
	}
	return ""
}

// FromPG maps a pgconn.PgError to a Problem. Returns (Problem, true) if mapped.
func FromPG(err error) (Problem, bool) {
	var pg *pgconn.PgError
	if !errors.As(err, &pg) {
		return Problem{}, false
	}

	p := Problem{
		Title:  "Database error",
		Status: 500,
	}

	field := constraintField[pg.ConstraintName]
	if field == "" && pg.Detail != "" {
		field = fieldFromDetail(pg.Detail)
	}
	fieldOr := func(def string) string {
		if field != "" {
			return field
		}
		return def
	}

	switch pg.Code {
	case "23505": // unique_violation
		p.Status = 409
		p.Title = "Conflict"
		p.FieldErrors = []FieldError{{Field: fieldOr("resource"), Code: "unique", Message: "value already exists"}}
	case "23503": // foreign_key_violation
		p.Status = 409
		p.Title = "Conflict"
		p.FieldErrors = []FieldError{{Field: fieldOr("resource"), Code: "fk", Message: "resource is referenced by other records"}}
	case "23502": // not_null_violation
		p.Status = 400
		p.Title = "Bad Request"
		if field == "" {
			field = pg.ColumnName
		}
		p.FieldErrors = []FieldError{{Field: fieldOr("field"), Code: "not_null", Message: "required field is missing"}}
	case "23514": // check_violation
		p.Status = 422
		p.Title = "Unprocessable Entity"
		p.FieldErrors = []FieldError{{Field: fieldOr("field"), Code: "check", Message: "constraint failed"}}
	case "22P02", "22007", "22008": // invalid text representation / datetime format
		p.Status = 400
		p.Title = "Bad Request"
		p.FieldErrors = []FieldError{{Field: fieldOr("id"), Code: "invalid", Message: "invalid format"}}
	case "22001": // string_data_right_truncation
		p.Status = 400
		p.Title = "Bad Request"
		p.FieldErrors = []FieldError{{Field: fieldOr("field"), Code: "too_long", Message: "value is too long"}}
	case "40001": // serialization_failure
		p.Status = 409
		p.Title = "Conflict"
		p.Detail = "transaction conflict, please retry"
		p.Retryable = true
	case "40P01": // deadlock_detected
		p.Status = 409
		p.Title = "Conflict"
		p.Detail = "deadlock detected, please retry"
		p.Retryable = true
	case "55P03": // lock_not_available
		p.Status = 409
		p.Title = "Conflict"
		p.Detail = "record is locked, please retry"
		p.Retryable = true
	}
	return p, true
}

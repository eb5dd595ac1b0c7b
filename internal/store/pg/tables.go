package pg

import (
	"database/sql"

	"github.com/5w1tchy/library-admin/internal/models"
)

var authorsTable = table[models.Author]{
	name: "authors",
	cols: []string{"id", "name", "bio"},
	text: func(a models.Author) string { return a.Name },
	scan: func(s scanner) (models.Author, error) {
		var a models.Author
		err := s.Scan(&a.ID, &a.Name, &a.Bio)
		return a, err
	},
	args: func(a models.Author) []any { return []any{a.ID, a.Name, a.Bio} },
}

var categoriesTable = table[models.Category]{
	name: "categories",
	cols: []string{"id", "name", "description"},
	text: func(c models.Category) string { return c.Name },
	scan: func(s scanner) (models.Category, error) {
		var c models.Category
		err := s.Scan(&c.ID, &c.Name, &c.Description)
		return c, err
	},
	args: func(c models.Category) []any { return []any{c.ID, c.Name, c.Description} },
}

var booksTable = table[models.Book]{
	name: "books",
	cols: []string{"id", "title", "author_id", "category_id", "isbn", "quantity", "location", "cover_url"},
	text: func(b models.Book) string { return b.Title },
	scan: func(s scanner) (models.Book, error) {
		var (
			b     models.Book
			cover sql.NullString
		)
		err := s.Scan(&b.ID, &b.Title, &b.AuthorID, &b.CategoryID, &b.ISBN, &b.Quantity, &b.Location, &cover)
		if cover.Valid {
			b.CoverURL = &cover.String
		}
		return b, err
	},
	args: func(b models.Book) []any {
		return []any{b.ID, b.Title, b.AuthorID, b.CategoryID, b.ISBN, b.Quantity, b.Location, nullIfEmpty(b.CoverURL)}
	},
}

var readersTable = table[models.Reader]{
	name: "readers",
	cols: []string{"id", "card_id", "name", "email", "phone", "status", "joined_date"},
	text: func(r models.Reader) string { return r.Name },
	scan: func(s scanner) (models.Reader, error) {
		var r models.Reader
		err := s.Scan(&r.ID, &r.CardID, &r.Name, &r.Email, &r.Phone, &r.Status, &r.JoinedDate)
		return r, err
	},
	args: func(r models.Reader) []any {
		return []any{r.ID, r.CardID, r.Name, r.Email, r.Phone, string(r.Status), r.JoinedDate}
	},
}

var loansTable = table[models.Loan]{
	name: "loans",
	cols: []string{"id", "reader_id", "book_id", "borrow_date", "due_date", "return_date", "fine"},
	scan: func(s scanner) (models.Loan, error) {
		var (
			l  models.Loan
			rd models.Date
		)
		err := s.Scan(&l.ID, &l.ReaderID, &l.BookID, &l.BorrowDate, &l.DueDate, &rd, &l.Fine)
		if !rd.IsZero() {
			l.ReturnDate = &rd
		}
		return l, err
	},
	args: func(l models.Loan) []any {
		var rd any
		if l.ReturnDate != nil {
			rd = *l.ReturnDate
		}
		return []any{l.ID, l.ReaderID, l.BookID, l.BorrowDate, l.DueDate, rd, l.Fine}
	},
}

func nullIfEmpty(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

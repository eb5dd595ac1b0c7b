package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	BookAvailable  = "Available"
	BookOutOfStock = "Out of Stock"

	// UnknownName is shown when a book points at an author or category that does not exist.
	UnknownName = "Unknown"
)

type Book struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	AuthorID   string  `json:"author_id"`
	CategoryID string  `json:"category_id"`
	ISBN       string  `json:"isbn"`
	Quantity   int     `json:"quantity"`
	Location   string  `json:"location"`
	CoverURL   *string `json:"cover_url,omitempty"`
}

func (b Book) Key() string             { return b.ID }
func (b Book) WithKey(id string) Book { b.ID = id; return b }

// BookView is a book with its names resolved and availability derived from open loans.
type BookView struct {
	Book
	AuthorName   string `json:"author_name"`
	CategoryName string `json:"category_name"`
	Available    int    `json:"available"`
	Status       string `json:"status"`
}

// SearchText is the text matched by the public search page.
func (v BookView) SearchText() string {
	return v.Title + "\n" + v.AuthorName + "\n" + v.CategoryName
}

// NewBookView derives availability as quantity minus open loans, floored at zero.
func NewBookView(b Book, authorName, categoryName string, openLoans int) BookView {
	avail := b.Quantity - openLoans
	if avail < 0 {
		avail = 0
	}
	status := BookAvailable
	if avail == 0 {
		status = BookOutOfStock
	}
	if authorName == "" {
		authorName = UnknownName
	}
	if categoryName == "" {
		categoryName = UnknownName
	}
	return BookView{Book: b, AuthorName: authorName, CategoryName: categoryName, Available: avail, Status: status}
}

type BookDraft struct {
	Title      *string `json:"title,omitempty"`
	AuthorID   *string `json:"author_id,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	ISBN       *string `json:"isbn,omitempty"`
	Quantity   *int    `json:"quantity,omitempty"`
	Location   *string `json:"location,omitempty"`
	CoverURL   *string `json:"cover_url,omitempty"`

	badQuantity bool
}

// UnmarshalJSON accepts quantity as a number or a numeric string and
// remembers non-numeric input so Validate can report it on the field.
// Unknown fields are rejected, as they are for every other draft.
func (d *BookDraft) UnmarshalJSON(b []byte) error {
	type alias BookDraft
	var raw struct {
		alias
		Quantity json.RawMessage `json:"quantity,omitempty"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*d = BookDraft(raw.alias)
	if len(raw.Quantity) > 0 && string(raw.Quantity) != "null" {
		if n, ok := parseQuantity(raw.Quantity); ok {
			d.Quantity = &n
		} else {
			d.badQuantity = true
		}
	}
	return nil
}

func (d BookDraft) Apply(b *Book) {
	if d.Title != nil {
		b.Title = *d.Title
	}
	if d.AuthorID != nil {
		b.AuthorID = *d.AuthorID
	}
	if d.CategoryID != nil {
		b.CategoryID = *d.CategoryID
	}
	if d.ISBN != nil {
		b.ISBN = *d.ISBN
	}
	if d.Quantity != nil {
		b.Quantity = *d.Quantity
	}
	if d.Location != nil {
		b.Location = *d.Location
	}
	if d.CoverURL != nil {
		if *d.CoverURL == "" {
			b.CoverURL = nil
		} else {
			u := *d.CoverURL
			b.CoverURL = &u
		}
	}
}

func (d *BookDraft) Validate(create bool) error {
	sanitize(d.Title)
	sanitize(d.Location)
	if d.ISBN != nil {
		s := strings.TrimSpace(*d.ISBN)
		d.ISBN = &s
	}
	var v ValidationError
	v.checkRequired("title", d.Title, create)
	v.checkRequired("author_id", d.AuthorID, create)
	v.checkRequired("category_id", d.CategoryID, create)
	switch {
	case d.badQuantity:
		v.add("quantity", "invalid", "quantity must be a whole number")
	case d.Quantity != nil && *d.Quantity < 0:
		v.add("quantity", "range", "quantity must not be negative")
	}
	return v.err()
}

// NewBook holds the defaults a created book starts from.
func NewBook() Book { return Book{Quantity: 1} }

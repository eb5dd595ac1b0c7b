package models

type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

func (a Author) Key() string               { return a.ID }
func (a Author) WithKey(id string) Author { a.ID = id; return a }

// AuthorView adds the number of books that reference the author.
type AuthorView struct {
	Author
	BooksCount int `json:"books_count"`
}

type AuthorDraft struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

func (d AuthorDraft) Apply(a *Author) {
	if d.Name != nil {
		a.Name = *d.Name
	}
	if d.Bio != nil {
		a.Bio = *d.Bio
	}
}

func (d *AuthorDraft) Validate(create bool) error {
	sanitize(d.Name)
	var v ValidationError
	v.checkRequired("name", d.Name, create)
	return v.err()
}

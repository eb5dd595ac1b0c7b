package models

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c Category) Key() string                 { return c.ID }
func (c Category) WithKey(id string) Category { c.ID = id; return c }

// CategoryView adds the number of books filed under the category.
type CategoryView struct {
	Category
	Count int `json:"count"`
}

type CategoryDraft struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d CategoryDraft) Apply(c *Category) {
	if d.Name != nil {
		c.Name = *d.Name
	}
	if d.Description != nil {
		c.Description = *d.Description
	}
}

func (d *CategoryDraft) Validate(create bool) error {
	sanitize(d.Name)
	sanitize(d.Description)
	var v ValidationError
	v.checkRequired("name", d.Name, create)
	return v.err()
}

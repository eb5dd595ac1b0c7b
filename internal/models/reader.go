package models

import "slices"

type ReaderStatus string

const (
	ReaderActive  ReaderStatus = "Active"
	ReaderExpired ReaderStatus = "Expired"
	ReaderBlocked ReaderStatus = "Blocked"
)

var readerStatuses = []ReaderStatus{ReaderActive, ReaderExpired, ReaderBlocked}

func (s ReaderStatus) Valid() bool { return slices.Contains(readerStatuses, s) }

type Reader struct {
	ID         string       `json:"id"`
	CardID     string       `json:"card_id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Status     ReaderStatus `json:"status"`
	JoinedDate Date         `json:"joined_date"`
}

func (r Reader) Key() string               { return r.ID }
func (r Reader) WithKey(id string) Reader { r.ID = id; return r }

// ReaderView adds loan counters computed from the loans that reference the reader.
type ReaderView struct {
	Reader
	ActiveLoans int `json:"active_loans"`
	TotalLoans  int `json:"total_loans"`
}

type ReaderDraft struct {
	CardID *string       `json:"card_id,omitempty"`
	Name   *string       `json:"name,omitempty"`
	Email  *string       `json:"email,omitempty"`
	Phone  *string       `json:"phone,omitempty"`
	Status *ReaderStatus `json:"status,omitempty"`
}

func (d ReaderDraft) Apply(r *Reader) {
	if d.CardID != nil && *d.CardID != "" {
		r.CardID = *d.CardID
	}
	if d.Name != nil {
		r.Name = *d.Name
	}
	if d.Email != nil {
		r.Email = *d.Email
	}
	if d.Phone != nil {
		r.Phone = *d.Phone
	}
	if d.Status != nil {
		r.Status = *d.Status
	}
}

func (d *ReaderDraft) Validate(create bool) error {
	sanitize(d.Name)
	sanitize(d.CardID)
	sanitize(d.Email)
	sanitize(d.Phone)
	var v ValidationError
	v.checkRequired("name", d.Name, create)
	if d.Email != nil && !validEmail(*d.Email) {
		v.add("email", "format", "email is not a valid address")
	}
	if d.Status != nil && !d.Status.Valid() {
		v.add("status", "enum", "status must be one of Active, Expired, Blocked")
	}
	return v.err()
}

// NewReader holds the defaults a created reader starts from.
func NewReader(today Date) Reader {
	return Reader{Status: ReaderActive, JoinedDate: today}
}

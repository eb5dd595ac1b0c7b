package models

import (
	"math"
	"time"
)

type Settings struct {
	LibraryName       string `json:"library_name"`
	FinePerDay        int64  `json:"fine_per_day"`
	MaxBooksPerReader int    `json:"max_books_per_reader"`
	LoanPeriodDays    int    `json:"loan_period_days"`
}

func DefaultSettings() Settings {
	return Settings{
		LibraryName:       "NTC Library",
		FinePerDay:        1000,
		MaxBooksPerReader: 5,
		LoanPeriodDays:    14,
	}
}

type SettingsDraft struct {
	LibraryName       *string `json:"library_name,omitempty"`
	FinePerDay        *int64  `json:"fine_per_day,omitempty"`
	MaxBooksPerReader *int    `json:"max_books_per_reader,omitempty"`
	LoanPeriodDays    *int    `json:"loan_period_days,omitempty"`
}

func (d SettingsDraft) Apply(s *Settings) {
	if d.LibraryName != nil {
		s.LibraryName = *d.LibraryName
	}
	if d.FinePerDay != nil {
		s.FinePerDay = *d.FinePerDay
	}
	if d.MaxBooksPerReader != nil {
		s.MaxBooksPerReader = *d.MaxBooksPerReader
	}
	if d.LoanPeriodDays != nil {
		s.LoanPeriodDays = *d.LoanPeriodDays
	}
}

func (d *SettingsDraft) Validate() error {
	sanitize(d.LibraryName)
	var v ValidationError
	if d.LibraryName != nil && *d.LibraryName == "" {
		v.required("library_name")
	}
	if d.FinePerDay != nil && *d.FinePerDay < 0 {
		v.add("fine_per_day", "range", "fine_per_day must not be negative")
	}
	if d.MaxBooksPerReader != nil && *d.MaxBooksPerReader < 1 {
		v.add("max_books_per_reader", "range", "max_books_per_reader must be at least 1")
	}
	if d.LoanPeriodDays != nil && *d.LoanPeriodDays < 1 {
		v.add("loan_period_days", "range", "loan_period_days must be at least 1")
	}
	return v.err()
}

// Audit actions recorded by the admin operations.
const (
	ActionLogin          = "LOGIN"
	ActionCreateBook     = "CREATE_BOOK"
	ActionUpdateBook     = "UPDATE_BOOK"
	ActionDeleteBook     = "DELETE_BOOK"
	ActionCreateAuthor   = "CREATE_AUTHOR"
	ActionUpdateAuthor   = "UPDATE_AUTHOR"
	ActionDeleteAuthor   = "DELETE_AUTHOR"
	ActionCreateCategory = "CREATE_CATEGORY"
	ActionUpdateCategory = "UPDATE_CATEGORY"
	ActionDeleteCategory = "DELETE_CATEGORY"
	ActionCreateReader   = "CREATE_READER"
	ActionUpdateReader   = "UPDATE_READER"
	ActionDeleteReader   = "DELETE_READER"
	ActionLoanCreated    = "LOAN_CREATED"
	ActionBookReturned   = "BOOK_RETURNED"
	ActionSettingsUpdate = "SETTINGS_UPDATE"
	ActionExport         = "EXPORT"
)

type AuditEntry struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditFilter struct {
	Action string
	Page   int
	Size   int
}

// Offset is the number of entries before the page. ok is false when the
// page starts past any representable offset.
func (f AuditFilter) Offset() (offset int, ok bool) {
	if f.Page < 1 || f.Size < 1 {
		return 0, true
	}
	if f.Page-1 > math.MaxInt/f.Size {
		return 0, false
	}
	return (f.Page - 1) * f.Size, true
}

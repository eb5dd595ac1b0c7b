package models

type LoanStatus string

const (
	LoanActive   LoanStatus = "Active"
	LoanOverdue  LoanStatus = "Overdue"
	LoanReturned LoanStatus = "Returned"
)

// Loan stores only facts; its status is derived from the dates.
type Loan struct {
	ID         string `json:"id"`
	ReaderID   string `json:"reader_id"`
	BookID     string `json:"book_id"`
	BorrowDate Date   `json:"borrow_date"`
	DueDate    Date   `json:"due_date"`
	ReturnDate *Date  `json:"return_date,omitempty"`
	Fine       int64  `json:"fine"`
}

func (l Loan) Key() string             { return l.ID }
func (l Loan) WithKey(id string) Loan { l.ID = id; return l }

// Open reports whether the book is still out.
func (l Loan) Open() bool { return l.ReturnDate == nil }

// StatusOn derives the loan state for the given day.
func (l Loan) StatusOn(today Date) LoanStatus {
	switch {
	case l.ReturnDate != nil:
		return LoanReturned
	case l.DueDate.Before(today.Time):
		return LoanOverdue
	default:
		return LoanActive
	}
}

// DaysOverdue counts whole days past the due date, up to the return date if set.
func (l Loan) DaysOverdue(today Date) int {
	end := today
	if l.ReturnDate != nil {
		end = *l.ReturnDate
	}
	if n := end.DaysSince(l.DueDate); n > 0 {
		return n
	}
	return 0
}

type LoanView struct {
	Loan
	ReaderName string     `json:"reader_name"`
	BookTitle  string     `json:"book_title"`
	Status     LoanStatus `json:"status"`
}

// LoanDraft carries the fields a return or correction may change.
type LoanDraft struct {
	DueDate    *Date  `json:"due_date,omitempty"`
	ReturnDate *Date  `json:"return_date,omitempty"`
	Fine       *int64 `json:"fine,omitempty"`
}

func (d LoanDraft) Apply(l *Loan) {
	if d.DueDate != nil {
		l.DueDate = *d.DueDate
	}
	if d.ReturnDate != nil {
		rd := *d.ReturnDate
		l.ReturnDate = &rd
	}
	if d.Fine != nil {
		l.Fine = *d.Fine
	}
}

// LoanRequest is the new-loan form.
type LoanRequest struct {
	ReaderID string `json:"reader_id"`
	BookID   string `json:"book_id"`
	DueDate  Date   `json:"due_date"`
}

func (r *LoanRequest) Validate() error {
	r.ReaderID = SanitizeString(r.ReaderID)
	r.BookID = SanitizeString(r.BookID)
	var v ValidationError
	if r.ReaderID == "" {
		v.required("reader_id")
	}
	if r.BookID == "" {
		v.required("book_id")
	}
	return v.err()
}

package domain

import "time"

// Loan records a checkout. A loan is active while ReturnedAt is nil. Opening
// a loan decrements the book's available copies and closing it increments
// them back, both inside the same transaction as the loan row mutation.
type Loan struct {
	ID          string     `json:"id"`
	BookISBN    string     `json:"bookIsbn"`
	CustomerSSN string     `json:"customerSsn"`
	IssuedBy    string     `json:"issuedBy"`
	LoanedAt    time.Time  `json:"loanedAt"`
	ReturnedAt  *time.Time `json:"returnedAt,omitempty"`
}

// Active reports whether the loan is still open.
func (l Loan) Active() bool {
	return l.ReturnedAt == nil
}

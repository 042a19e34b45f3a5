package httpserver

import (
	"time"

	"library-backend/internal/domain"
)

// bookView is the relaxed book projection used in list and detail responses.
type bookView struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	SubjectArea     string `json:"subjectArea"`
	Description     string `json:"description,omitempty"`
	AvailableCopies int    `json:"availableCopies"`
	IsLoanable      bool   `json:"isLoanable"`
	IsActive        bool   `json:"isActive"`
}

func toBookView(b domain.Book) bookView {
	return bookView{
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		SubjectArea:     b.SubjectArea,
		Description:     b.Description,
		AvailableCopies: b.AvailableCopies,
		IsLoanable:      b.IsLoanable,
		IsActive:        b.State() == domain.StateActive,
	}
}

func toBookViews(books []domain.Book) []bookView {
	views := make([]bookView, 0, len(books))
	for _, b := range books {
		views = append(views, toBookView(b))
	}
	return views
}

type addressView struct {
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
	Country  string `json:"country"`
}

type phoneNumberView struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
	Type        string `json:"type"`
}

type cardView struct {
	ID             string    `json:"id"`
	CustomerSSN    string    `json:"customerSsn"`
	ExpirationDate time.Time `json:"expirationDate"`
	IsActive       bool      `json:"isActive"`
}

func toCardView(c domain.Card) cardView {
	return cardView{
		ID:             c.ID,
		CustomerSSN:    c.CustomerSSN,
		ExpirationDate: c.ExpirationDate,
		IsActive:       c.IsActive,
	}
}

// customerView is the relaxed customer projection. It carries no password
// hash and no internal counters beyond the borrow/reserve capabilities.
type customerView struct {
	SSN          string            `json:"ssn"`
	Email        string            `json:"email"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	CampusID     int64             `json:"campusId"`
	Type         string            `json:"type"`
	CanBorrow    bool              `json:"canBorrow"`
	CanReserve   bool              `json:"canReserve"`
	IsActive     bool              `json:"isActive"`
	HomeAddress  *addressView      `json:"homeAddress,omitempty"`
	PhoneNumbers []phoneNumberView `json:"phoneNumbers"`
	ActiveCard   *cardView         `json:"activeCard,omitempty"`
}

func toCustomerView(c domain.Customer) customerView {
	view := customerView{
		SSN:        c.SSN,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		CampusID:   c.CampusID,
		Type:       string(c.Type),
		CanBorrow:  c.CanBorrow,
		CanReserve: c.CanReserve,
		IsActive:   c.IsActive,
	}
	if c.HomeAddress != nil {
		view.HomeAddress = &addressView{
			Street:   c.HomeAddress.Street,
			Number:   c.HomeAddress.Number,
			City:     c.HomeAddress.City,
			PostCode: c.HomeAddress.PostCode,
			Country:  c.HomeAddress.Country,
		}
	}
	view.PhoneNumbers = make([]phoneNumberView, 0, len(c.PhoneNumbers))
	for _, p := range c.PhoneNumbers {
		view.PhoneNumbers = append(view.PhoneNumbers, phoneNumberView{
			CountryCode: p.CountryCode,
			Number:      p.Number,
			Type:        p.Type,
		})
	}
	if card := c.ActiveCard(); card != nil {
		cv := toCardView(*card)
		view.ActiveCard = &cv
	}
	return view
}

type librarianView struct {
	SSN       string `json:"ssn"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
}

func toLibrarianView(l domain.Librarian) librarianView {
	return librarianView{
		SSN:       l.SSN,
		Email:     l.Email,
		FirstName: l.FirstName,
		LastName:  l.LastName,
		Position:  l.Position,
	}
}

type loanView struct {
	ID          string     `json:"id"`
	BookISBN    string     `json:"bookIsbn"`
	CustomerSSN string     `json:"customerSsn"`
	LoanedAt    time.Time  `json:"loanedAt"`
	ReturnedAt  *time.Time `json:"returnedAt,omitempty"`
	Active      bool       `json:"active"`
}

func toLoanView(l domain.Loan) loanView {
	return loanView{
		ID:          l.ID,
		BookISBN:    l.BookISBN,
		CustomerSSN: l.CustomerSSN,
		LoanedAt:    l.LoanedAt,
		ReturnedAt:  l.ReturnedAt,
		Active:      l.Active(),
	}
}

func toLoanViews(loans []domain.Loan) []loanView {
	views := make([]loanView, 0, len(loans))
	for _, l := range loans {
		views = append(views, toLoanView(l))
	}
	return views
}

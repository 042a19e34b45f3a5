package domain

import "time"

// CustomerType distinguishes students from professors; professors receive a
// longer card validity window.
type CustomerType string

const (
	CustomerStudent   CustomerType = "STUDENT"
	CustomerProfessor CustomerType = "PROFESSOR"
)

func (t CustomerType) Valid() bool {
	return t == CustomerStudent || t == CustomerProfessor
}

// Address stores a postal address. City, post code and country are mandatory.
// A customer's home address is exclusively owned; a campus address is a shared
// reference.
type Address struct {
	ID       int64  `json:"id"`
	Street   string `json:"street,omitempty"`
	Number   string `json:"number,omitempty"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
	Country  string `json:"country"`
}

// Campus wraps one shared Address.
type Campus struct {
	AddressID int64   `json:"addressId"`
	Address   Address `json:"address"`
}

// PhoneNumber is exclusively owned by a customer and keyed by
// (customer_ssn, country_code, number). Updates replace the whole set.
type PhoneNumber struct {
	CustomerSSN string `json:"-"`
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
	Type        string `json:"type"`
}

// Card grants library access. A customer may hold several cards over time but
// at most one active card at a given moment.
type Card struct {
	ID             string    `json:"id"`
	CustomerSSN    string    `json:"customerSsn"`
	ExpirationDate time.Time `json:"expirationDate"`
	PhotoPath      string    `json:"photoPath,omitempty"`
	IsActive       bool      `json:"isActive"`
}

// Customer is a registered library patron identified by SSN, never
// hard-deleted; IsActive carries the shared enable/disable state.
type Customer struct {
	SSN           string       `json:"ssn"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	CampusID      int64        `json:"campusId"`
	Type          CustomerType `json:"type"`
	HomeAddress   *Address     `json:"homeAddress,omitempty"`
	PhoneNumbers  []PhoneNumber `json:"phoneNumbers,omitempty"`
	Cards         []Card       `json:"cards,omitempty"`
	CanBorrow     bool         `json:"canBorrow"`
	CanReserve    bool         `json:"canReserve"`
	BooksBorrowed int          `json:"booksBorrowed"`
	BooksReserved int          `json:"booksReserved"`
	IsActive      bool         `json:"isActive"`
}

// State maps the is_active flag onto the shared record state machine.
func (c Customer) State() RecordState {
	return StateFromActive(c.IsActive)
}

// ActiveCard returns the first active card, or nil when none is active.
func (c Customer) ActiveCard() *Card {
	for i := range c.Cards {
		if c.Cards[i].IsActive {
			return &c.Cards[i]
		}
	}
	return nil
}

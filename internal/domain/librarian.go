package domain

// Librarian is a staff account. Librarians issue loans and manage the catalog.
type Librarian struct {
	SSN          string `json:"ssn"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Position     string `json:"position"`
}

// Role identifies the kind of authenticated actor.
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleLibrarian Role = "librarian"
)

// Actor is the authenticated identity threaded explicitly into operations
// that need it.
type Actor struct {
	SSN  string
	Role Role
}

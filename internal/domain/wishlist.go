package domain

import "time"

// ReservationWindow is how long a requested wishlist item stays visible in the
// librarian reservation queue before it silently expires.
const ReservationWindow = 30 * 24 * time.Hour

// CustomerWishlistItem is a customer's standing interest in a book. Setting
// RequestedAt escalates it into a reservation visible to librarians.
type CustomerWishlistItem struct {
	ID          string     `json:"id"`
	CustomerSSN string     `json:"customerSsn"`
	BookISBN    string     `json:"bookIsbn"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
	PickedUp    bool       `json:"pickedUp"`
}

// PendingReservation reports whether the item should appear in the librarian
// reservation queue at the given instant.
func (w CustomerWishlistItem) PendingReservation(now time.Time) bool {
	if w.RequestedAt == nil || w.PickedUp {
		return false
	}
	return w.RequestedAt.After(now.Add(-ReservationWindow))
}

// LibrarianWishlistItem is an entry in the library's acquisition wishlist,
// unrelated to customers or catalog books.
type LibrarianWishlistItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

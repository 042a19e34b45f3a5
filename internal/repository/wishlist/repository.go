package wishlist

import (
	"context"
	"time"

	"library-backend/internal/domain"
)

// Repository persists customer wishlist items, the librarian reservation
// queue derived from them, and the separate librarian acquisition wishlist.
type Repository interface {
	AddCustomerItem(ctx context.Context, item domain.CustomerWishlistItem) (*domain.CustomerWishlistItem, error)
	RemoveCustomerItem(ctx context.Context, customerSSN, id string) error
	RequestPickup(ctx context.Context, customerSSN, id string, requestedAt time.Time) (*domain.CustomerWishlistItem, error)
	ListByCustomer(ctx context.Context, customerSSN string) ([]domain.CustomerWishlistItem, error)

	ListPendingReservations(ctx context.Context, since time.Time) ([]domain.CustomerWishlistItem, error)
	MarkPickedUp(ctx context.Context, id string) (*domain.CustomerWishlistItem, error)

	AddLibrarianItem(ctx context.Context, item domain.LibrarianWishlistItem) (*domain.LibrarianWishlistItem, error)
	RemoveLibrarianItem(ctx context.Context, id string) error
	ListLibrarianItems(ctx context.Context) ([]domain.LibrarianWishlistItem, error)
}

package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domain"
)

// Service covers the customer wishlist, the librarian reservation queue and
// the librarian acquisition wishlist.
type Service struct {
	repo wishlistRepo
}

type wishlistRepo interface {
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

func New(repo wishlistRepo) *Service {
	return &Service{repo: repo}
}

// Add registers a customer's interest in a book. A customer can hold at most
// one wishlist entry per book; duplicates report ErrAlreadyExists.
func (s *Service) Add(ctx context.Context, actor domain.Actor, isbn string) (*domain.CustomerWishlistItem, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrUnauthorized
	}
	if isbn == "" {
		return nil, fmt.Errorf("%w: isbn is required", domain.ErrInvalidRequest)
	}
	return s.repo.AddCustomerItem(ctx, domain.CustomerWishlistItem{
		ID:          uuid.NewString(),
		CustomerSSN: actor.SSN,
		BookISBN:    isbn,
	})
}

// Remove drops a wishlist item the customer owns.
func (s *Service) Remove(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RoleCustomer {
		return domain.ErrUnauthorized
	}
	return s.repo.RemoveCustomerItem(ctx, actor.SSN, id)
}

// Request escalates a wishlist item into a reservation by stamping
// requested_at with the current instant.
func (s *Service) Request(ctx context.Context, actor domain.Actor, id string) (*domain.CustomerWishlistItem, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.RequestPickup(ctx, actor.SSN, id, time.Now().UTC())
}

// List returns the customer's own wishlist.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]domain.CustomerWishlistItem, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListByCustomer(ctx, actor.SSN)
}

// PendingReservations lists requested items within the rolling 30-day window
// that have not been picked up yet. Librarian only.
func (s *Service) PendingReservations(ctx context.Context, actor domain.Actor) ([]domain.CustomerWishlistItem, error) {
	if actor.Role != domain.RoleLibrarian {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListPendingReservations(ctx, time.Now().UTC().Add(-domain.ReservationWindow))
}

// MarkPickedUp fulfills a pending reservation. Librarian only.
func (s *Service) MarkPickedUp(ctx context.Context, actor domain.Actor, id string) (*domain.CustomerWishlistItem, error) {
	if actor.Role != domain.RoleLibrarian {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.MarkPickedUp(ctx, id)
}

// LibrarianAddInput is an acquisition wishlist entry.
type LibrarianAddInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AddLibrarianItem appends to the library's acquisition wishlist.
func (s *Service) AddLibrarianItem(ctx context.Context, actor domain.Actor, in LibrarianAddInput) (*domain.LibrarianWishlistItem, error) {
	if actor.Role != domain.RoleLibrarian {
		return nil, domain.ErrUnauthorized
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidRequest)
	}
	return s.repo.AddLibrarianItem(ctx, domain.LibrarianWishlistItem{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
	})
}

// RemoveLibrarianItem deletes an acquisition wishlist entry.
func (s *Service) RemoveLibrarianItem(ctx context.Context, actor domain.Actor, id string) error {
	if actor.Role != domain.RoleLibrarian {
		return domain.ErrUnauthorized
	}
	return s.repo.RemoveLibrarianItem(ctx, id)
}

// ListLibrarianItems returns the acquisition wishlist.
func (s *Service) ListLibrarianItems(ctx context.Context, actor domain.Actor) ([]domain.LibrarianWishlistItem, error) {
	if actor.Role != domain.RoleLibrarian {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListLibrarianItems(ctx)
}

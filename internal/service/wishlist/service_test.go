package wishlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-backend/internal/domain"
)

// memoryRepo keeps wishlist items in memory and enforces the one-entry-per
// customer-and-book constraint the schema provides.
type memoryRepo struct {
	customerItems  map[string]domain.CustomerWishlistItem
	librarianItems map[string]domain.LibrarianWishlistItem
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		customerItems:  make(map[string]domain.CustomerWishlistItem),
		librarianItems: make(map[string]domain.LibrarianWishlistItem),
	}
}

func (r *memoryRepo) AddCustomerItem(_ context.Context, item domain.CustomerWishlistItem) (*domain.CustomerWishlistItem, error) {
	for _, existing := range r.customerItems {
		if existing.CustomerSSN == item.CustomerSSN && existing.BookISBN == item.BookISBN {
			return nil, domain.ErrAlreadyExists
		}
	}
	r.customerItems[item.ID] = item
	clone := item
	return &clone, nil
}

func (r *memoryRepo) RemoveCustomerItem(_ context.Context, customerSSN, id string) error {
	item, ok := r.customerItems[id]
	if !ok || item.CustomerSSN != customerSSN {
		return domain.ErrNotFound
	}
	delete(r.customerItems, id)
	return nil
}

func (r *memoryRepo) RequestPickup(_ context.Context, customerSSN, id string, requestedAt time.Time) (*domain.CustomerWishlistItem, error) {
	item, ok := r.customerItems[id]
	if !ok || item.CustomerSSN != customerSSN {
		return nil, domain.ErrNotFound
	}
	item.RequestedAt = &requestedAt
	r.customerItems[id] = item
	clone := item
	return &clone, nil
}

func (r *memoryRepo) ListByCustomer(_ context.Context, customerSSN string) ([]domain.CustomerWishlistItem, error) {
	var result []domain.CustomerWishlistItem
	for _, item := range r.customerItems {
		if item.CustomerSSN == customerSSN {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *memoryRepo) ListPendingReservations(_ context.Context, since time.Time) ([]domain.CustomerWishlistItem, error) {
	var result []domain.CustomerWishlistItem
	for _, item := range r.customerItems {
		if item.RequestedAt != nil && item.RequestedAt.After(since) && !item.PickedUp {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *memoryRepo) MarkPickedUp(_ context.Context, id string) (*domain.CustomerWishlistItem, error) {
	item, ok := r.customerItems[id]
	if !ok || item.RequestedAt == nil || item.PickedUp {
		return nil, domain.ErrNotFound
	}
	item.PickedUp = true
	r.customerItems[id] = item
	clone := item
	return &clone, nil
}

func (r *memoryRepo) AddLibrarianItem(_ context.Context, item domain.LibrarianWishlistItem) (*domain.LibrarianWishlistItem, error) {
	r.librarianItems[item.ID] = item
	clone := item
	return &clone, nil
}

func (r *memoryRepo) RemoveLibrarianItem(_ context.Context, id string) error {
	if _, ok := r.librarianItems[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.librarianItems, id)
	return nil
}

func (r *memoryRepo) ListLibrarianItems(_ context.Context) ([]domain.LibrarianWishlistItem, error) {
	var result []domain.LibrarianWishlistItem
	for _, item := range r.librarianItems {
		result = append(result, item)
	}
	return result, nil
}

var (
	reader = domain.Actor{SSN: "cust-1", Role: domain.RoleCustomer}
	staff  = domain.Actor{SSN: "lib-1", Role: domain.RoleLibrarian}
)

func TestAdd_DuplicateBook(t *testing.T) {
	svc := New(newMemoryRepo())

	if _, err := svc.Add(context.Background(), reader, "isbn-1"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if _, err := svc.Add(context.Background(), reader, "isbn-1"); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	// A different customer may wish for the same book.
	other := domain.Actor{SSN: "cust-2", Role: domain.RoleCustomer}
	if _, err := svc.Add(context.Background(), other, "isbn-1"); err != nil {
		t.Fatalf("other customer add: %v", err)
	}
}

func TestAdd_RoleChecks(t *testing.T) {
	svc := New(newMemoryRepo())

	if _, err := svc.Add(context.Background(), staff, "isbn-1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for librarian add, got %v", err)
	}
	if _, err := svc.Add(context.Background(), reader, ""); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty isbn, got %v", err)
	}
	if _, err := svc.PendingReservations(context.Background(), reader); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for customer reservations view, got %v", err)
	}
}

func TestRemove_OnlyOwnItems(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)

	item, err := svc.Add(context.Background(), reader, "isbn-1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	other := domain.Actor{SSN: "cust-2", Role: domain.RoleCustomer}
	if err := svc.Remove(context.Background(), other, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign item, got %v", err)
	}
	if err := svc.Remove(context.Background(), reader, item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
}

func TestPendingReservations_Window(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)

	now := time.Now().UTC()
	recent := now.Add(-10 * 24 * time.Hour)
	stale := now.Add(-31 * 24 * time.Hour)

	repo.customerItems["fresh"] = domain.CustomerWishlistItem{ID: "fresh", CustomerSSN: "c1", BookISBN: "b1", RequestedAt: &recent}
	repo.customerItems["expired"] = domain.CustomerWishlistItem{ID: "expired", CustomerSSN: "c2", BookISBN: "b2", RequestedAt: &stale}
	repo.customerItems["fetched"] = domain.CustomerWishlistItem{ID: "fetched", CustomerSSN: "c3", BookISBN: "b3", RequestedAt: &recent, PickedUp: true}
	repo.customerItems["unrequested"] = domain.CustomerWishlistItem{ID: "unrequested", CustomerSSN: "c4", BookISBN: "b4"}

	pending, err := svc.PendingReservations(context.Background(), staff)
	if err != nil {
		t.Fatalf("pending reservations: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "fresh" {
		t.Fatalf("expected only the fresh reservation, got %+v", pending)
	}
}

func TestMarkPickedUp(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)

	now := time.Now().UTC()
	repo.customerItems["r1"] = domain.CustomerWishlistItem{ID: "r1", CustomerSSN: "c1", BookISBN: "b1", RequestedAt: &now}

	item, err := svc.MarkPickedUp(context.Background(), staff, "r1")
	if err != nil {
		t.Fatalf("mark picked up: %v", err)
	}
	if !item.PickedUp {
		t.Fatalf("expected picked up")
	}
	if _, err := svc.MarkPickedUp(context.Background(), staff, "r1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second pickup, got %v", err)
	}
}

func TestLibrarianWishlist(t *testing.T) {
	svc := New(newMemoryRepo())

	if _, err := svc.AddLibrarianItem(context.Background(), staff, LibrarianAddInput{Description: "no title"}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	item, err := svc.AddLibrarianItem(context.Background(), staff, LibrarianAddInput{Title: "Advanced Cartography"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := svc.ListLibrarianItems(context.Background(), staff)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	if err := svc.RemoveLibrarianItem(context.Background(), staff, item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveLibrarianItem(context.Background(), staff, item.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package catalog

import (
	"context"
	"errors"
	"testing"

	"library-backend/internal/domain"
	bookrepo "library-backend/internal/repository/book"
)

// memoryRepo is a lightweight in-memory book repository for tests.
type memoryRepo struct {
	books map[string]domain.Book

	lastSearch bookrepo.SearchQuery
	searchHits []domain.Book
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{books: make(map[string]domain.Book)}
}

func (r *memoryRepo) Create(_ context.Context, b domain.Book) (*domain.Book, error) {
	if _, exists := r.books[b.ISBN]; exists {
		return nil, domain.ErrAlreadyExists
	}
	r.books[b.ISBN] = b
	clone := b
	return &clone, nil
}

func (r *memoryRepo) GetByISBN(_ context.Context, isbn string) (*domain.Book, error) {
	b, ok := r.books[isbn]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := b
	return &clone, nil
}

func (r *memoryRepo) UpdateMetadata(_ context.Context, isbn string, patch bookrepo.MetadataPatch) (*domain.Book, error) {
	b, ok := r.books[isbn]
	if !ok || b.Deleted {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.SubjectArea != nil {
		b.SubjectArea = *patch.SubjectArea
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.ResourceType != nil {
		b.ResourceType = *patch.ResourceType
	}
	if patch.IsLoanable != nil {
		b.IsLoanable = *patch.IsLoanable
	}
	r.books[isbn] = b
	clone := b
	return &clone, nil
}

func (r *memoryRepo) UpdateStock(_ context.Context, isbn string, total, available int) (*domain.Book, error) {
	b, ok := r.books[isbn]
	if !ok || b.Deleted {
		return nil, domain.ErrNotFound
	}
	b.TotalCopies = total
	b.AvailableCopies = available
	r.books[isbn] = b
	clone := b
	return &clone, nil
}

func (r *memoryRepo) SetState(_ context.Context, isbn string, from, to domain.RecordState) error {
	b, ok := r.books[isbn]
	if !ok || b.State() != from {
		return domain.ErrNotFound
	}
	b.Deleted = to == domain.StateDisabled
	r.books[isbn] = b
	return nil
}

func (r *memoryRepo) Search(_ context.Context, q bookrepo.SearchQuery) ([]domain.Book, error) {
	r.lastSearch = q
	return r.searchHits, nil
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestCreateBook_Defaults(t *testing.T) {
	svc := New(newMemoryRepo())

	b, err := svc.CreateBook(context.Background(), CreateBookInput{
		ISBN:        "9780134190440",
		Title:       "The Go Programming Language",
		Author:      "Alan A. A. Donovan",
		SubjectArea: "Computer Science",
		ResourceType: "BOOK",
		TotalCopies: intPtr(4),
	})
	if err != nil {
		t.Fatalf("create book: %v", err)
	}
	if !b.IsLoanable {
		t.Fatalf("expected loanable by default")
	}
	if b.AvailableCopies != 4 {
		t.Fatalf("expected available to default to total, got %d", b.AvailableCopies)
	}
}

func TestCreateBook_Validation(t *testing.T) {
	svc := New(newMemoryRepo())

	cases := []struct {
		name string
		in   CreateBookInput
	}{
		{"missing title", CreateBookInput{ISBN: "1", Author: "a", SubjectArea: "s", ResourceType: "BOOK"}},
		{"bad resource type", CreateBookInput{ISBN: "1", Title: "t", Author: "a", SubjectArea: "s", ResourceType: "NEWSPAPER"}},
		{"available above total", CreateBookInput{ISBN: "1", Title: "t", Author: "a", SubjectArea: "s", ResourceType: "BOOK", TotalCopies: intPtr(1), AvailableCopies: intPtr(2)}},
		{"negative total", CreateBookInput{ISBN: "1", Title: "t", Author: "a", SubjectArea: "s", ResourceType: "BOOK", TotalCopies: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateBook(context.Background(), tc.in); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestUpdateStock_PartialMerge(t *testing.T) {
	repo := newMemoryRepo()
	repo.books["1"] = domain.Book{ISBN: "1", TotalCopies: 5, AvailableCopies: 3}
	svc := New(repo)

	b, err := svc.UpdateStock(context.Background(), "1", StockInput{TotalCopies: intPtr(6)})
	if err != nil {
		t.Fatalf("update stock: %v", err)
	}
	if b.TotalCopies != 6 || b.AvailableCopies != 3 {
		t.Fatalf("expected 6/3, got %d/%d", b.TotalCopies, b.AvailableCopies)
	}

	// Lowering total below the untouched available count must fail.
	if _, err := svc.UpdateStock(context.Background(), "1", StockInput{TotalCopies: intPtr(2)}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	if _, err := svc.UpdateStock(context.Background(), "1", StockInput{}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for empty input, got %v", err)
	}
}

func TestDisableEnableBook(t *testing.T) {
	repo := newMemoryRepo()
	repo.books["1"] = domain.Book{ISBN: "1"}
	svc := New(repo)

	if err := svc.DisableBook(context.Background(), "1"); err != nil {
		t.Fatalf("disable: %v", err)
	}
	// Disabling again must look like a missing record.
	if err := svc.DisableBook(context.Background(), "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double disable, got %v", err)
	}
	if err := svc.EnableBook(context.Background(), "1"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := svc.EnableBook(context.Background(), "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double enable, got %v", err)
	}
	if repo.books["1"].Deleted {
		t.Fatalf("expected book active after enable")
	}
}

func TestUpdateBook_RejectsUnknownResourceType(t *testing.T) {
	repo := newMemoryRepo()
	repo.books["1"] = domain.Book{ISBN: "1", ResourceType: domain.ResourceBook}
	svc := New(repo)

	bad := "COMIC"
	if _, err := svc.UpdateBook(context.Background(), "1", UpdateBookInput{ResourceType: &bad}); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

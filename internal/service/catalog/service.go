package catalog

import (
	"context"
	"fmt"

	"library-backend/internal/domain"
	bookrepo "library-backend/internal/repository/book"
)

// Service implements catalog maintenance and search over the book repository.
type Service struct {
	repo bookRepo
}

type bookRepo interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	UpdateMetadata(ctx context.Context, isbn string, patch bookrepo.MetadataPatch) (*domain.Book, error)
	UpdateStock(ctx context.Context, isbn string, total, available int) (*domain.Book, error)
	SetState(ctx context.Context, isbn string, from, to domain.RecordState) error
	Search(ctx context.Context, q bookrepo.SearchQuery) ([]domain.Book, error)
}

func New(repo bookRepo) *Service {
	return &Service{repo: repo}
}

// CreateBookInput captures the fields accepted by catalog-create. ISBN,
// title, author, subject area and resource type are mandatory.
type CreateBookInput struct {
	ISBN            string  `json:"isbn"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	SubjectArea     string  `json:"subjectArea"`
	Description     string  `json:"description"`
	ResourceType    string  `json:"resourceType"`
	IsLoanable      *bool   `json:"isLoanable"`
	TotalCopies     *int    `json:"totalCopies"`
	AvailableCopies *int    `json:"availableCopies"`
}

// UpdateBookInput carries a metadata patch; nil fields are left untouched.
type UpdateBookInput struct {
	Title        *string `json:"title"`
	Author       *string `json:"author"`
	SubjectArea  *string `json:"subjectArea"`
	Description  *string `json:"description"`
	ResourceType *string `json:"resourceType"`
	IsLoanable   *bool   `json:"isLoanable"`
}

// StockInput adjusts copy counts; omitted fields keep their current value.
type StockInput struct {
	TotalCopies     *int `json:"totalCopies"`
	AvailableCopies *int `json:"availableCopies"`
}

func (s *Service) CreateBook(ctx context.Context, in CreateBookInput) (*domain.Book, error) {
	if in.ISBN == "" || in.Title == "" || in.Author == "" || in.SubjectArea == "" {
		return nil, fmt.Errorf("%w: isbn, title, author and subjectArea are required", domain.ErrInvalidRequest)
	}
	rt := domain.ResourceType(in.ResourceType)
	if !rt.Valid() {
		return nil, fmt.Errorf("%w: unknown resource type %q", domain.ErrInvalidRequest, in.ResourceType)
	}

	total := 0
	if in.TotalCopies != nil {
		total = *in.TotalCopies
	}
	available := total
	if in.AvailableCopies != nil {
		available = *in.AvailableCopies
	}
	if total < 0 || available < 0 || available > total {
		return nil, fmt.Errorf("%w: available copies must be between 0 and total copies", domain.ErrInvalidRequest)
	}

	loanable := true
	if in.IsLoanable != nil {
		loanable = *in.IsLoanable
	}

	return s.repo.Create(ctx, domain.Book{
		ISBN:            in.ISBN,
		Title:           in.Title,
		Author:          in.Author,
		SubjectArea:     in.SubjectArea,
		Description:     in.Description,
		ResourceType:    rt,
		IsLoanable:      loanable,
		TotalCopies:     total,
		AvailableCopies: available,
	})
}

func (s *Service) GetBook(ctx context.Context, isbn string) (*domain.Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

func (s *Service) UpdateBook(ctx context.Context, isbn string, in UpdateBookInput) (*domain.Book, error) {
	var rt *domain.ResourceType
	if in.ResourceType != nil {
		candidate := domain.ResourceType(*in.ResourceType)
		if !candidate.Valid() {
			return nil, fmt.Errorf("%w: unknown resource type %q", domain.ErrInvalidRequest, *in.ResourceType)
		}
		rt = &candidate
	}
	return s.repo.UpdateMetadata(ctx, isbn, bookrepo.MetadataPatch{
		Title:        in.Title,
		Author:       in.Author,
		SubjectArea:  in.SubjectArea,
		Description:  in.Description,
		ResourceType: rt,
		IsLoanable:   in.IsLoanable,
	})
}

// UpdateStock applies a partial count adjustment on top of the book's current
// counts, then persists both together so the available-never-exceeds-total
// invariant is checked against the final pair.
func (s *Service) UpdateStock(ctx context.Context, isbn string, in StockInput) (*domain.Book, error) {
	if in.TotalCopies == nil && in.AvailableCopies == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidRequest)
	}
	current, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	total := current.TotalCopies
	if in.TotalCopies != nil {
		total = *in.TotalCopies
	}
	available := current.AvailableCopies
	if in.AvailableCopies != nil {
		available = *in.AvailableCopies
	}
	if total < 0 || available < 0 || available > total {
		return nil, fmt.Errorf("%w: available copies must be between 0 and total copies", domain.ErrInvalidRequest)
	}
	return s.repo.UpdateStock(ctx, isbn, total, available)
}

// DisableBook soft-deletes a book; only valid while the book is active.
func (s *Service) DisableBook(ctx context.Context, isbn string) error {
	return s.repo.SetState(ctx, isbn, domain.StateActive, domain.StateDisabled)
}

// EnableBook restores a soft-deleted book; only valid while disabled.
func (s *Service) EnableBook(ctx context.Context, isbn string) error {
	return s.repo.SetState(ctx, isbn, domain.StateDisabled, domain.StateActive)
}

package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domain"
)

// Service opens and closes loans on behalf of librarians.
type Service struct {
	repo  loanRepo
	books bookRepo
}

type loanRepo interface {
	Open(ctx context.Context, l domain.Loan) (*domain.Loan, error)
	Close(ctx context.Context, id string, returnedAt time.Time) (*domain.Loan, error)
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	ListActiveByCustomer(ctx context.Context, customerSSN string) ([]domain.Loan, error)
}

type bookRepo interface {
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
}

func New(repo loanRepo, books bookRepo) *Service {
	return &Service{repo: repo, books: books}
}

// OpenInput identifies the book and customer for a new loan.
type OpenInput struct {
	ISBN        string `json:"isbn"`
	CustomerSSN string `json:"ssn"`
}

// Open checks a book out to a customer. Only librarians may issue loans; the
// acting librarian is recorded on the loan. The book with its decremented
// availability is returned for display.
func (s *Service) Open(ctx context.Context, actor domain.Actor, in OpenInput) (*domain.Book, error) {
	if actor.Role != domain.RoleLibrarian {
		return nil, domain.ErrUnauthorized
	}
	if in.ISBN == "" || in.CustomerSSN == "" {
		return nil, fmt.Errorf("%w: isbn and ssn are required", domain.ErrInvalidRequest)
	}

	_, err := s.repo.Open(ctx, domain.Loan{
		ID:          uuid.NewString(),
		BookISBN:    in.ISBN,
		CustomerSSN: in.CustomerSSN,
		IssuedBy:    actor.SSN,
		LoanedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.books.GetByISBN(ctx, in.ISBN)
}

// Close stamps an open loan as returned. Closing an unknown or already
// closed loan reports ErrNotFound.
func (s *Service) Close(ctx context.Context, actor domain.Actor, id string) (*domain.Loan, error) {
	if actor.Role != domain.RoleLibrarian {
		return nil, domain.ErrUnauthorized
	}
	if id == "" {
		return nil, fmt.Errorf("%w: loan id is required", domain.ErrInvalidRequest)
	}
	return s.repo.Close(ctx, id, time.Now().UTC())
}

// Get fetches a single loan. Customers only see their own loans; a foreign
// loan id reads as missing rather than forbidden.
func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Loan, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleLibrarian && actor.SSN != l.CustomerSSN {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// ActiveForCustomer lists a customer's open loans. Customers may only see
// their own; librarians may see anyone's.
func (s *Service) ActiveForCustomer(ctx context.Context, actor domain.Actor, customerSSN string) ([]domain.Loan, error) {
	if actor.Role != domain.RoleLibrarian && actor.SSN != customerSSN {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListActiveByCustomer(ctx, customerSSN)
}

package loan

import (
	"context"
	"time"

	"library-backend/internal/domain"
)

// Repository opens and closes loans. Both operations mutate the loan row and
// the book's available-copy count in a single transaction.
type Repository interface {
	Open(ctx context.Context, l domain.Loan) (*domain.Loan, error)
	Close(ctx context.Context, id string, returnedAt time.Time) (*domain.Loan, error)
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	ListActiveByCustomer(ctx context.Context, customerSSN string) ([]domain.Loan, error)
}

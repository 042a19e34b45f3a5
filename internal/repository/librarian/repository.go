package librarian

import (
	"context"

	"library-backend/internal/domain"
)

// Repository fetches librarian staff accounts.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Librarian, error)
	GetBySSN(ctx context.Context, ssn string) (*domain.Librarian, error)
}

package campus

import (
	"context"

	"library-backend/internal/domain"
)

// Repository lists campuses with their shared addresses.
type Repository interface {
	List(ctx context.Context) ([]domain.Campus, error)
	GetByID(ctx context.Context, addressID int64) (*domain.Campus, error)
}

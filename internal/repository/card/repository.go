package card

import (
	"context"
	"time"

	"library-backend/internal/domain"
)

// Repository handles library card lookups and validity extension.
type Repository interface {
	FindByPrefix(ctx context.Context, prefix string, limit int) ([]domain.Card, error)
	ExtendActive(ctx context.Context, customerSSN string, expiration time.Time) (*domain.Card, error)
}

package customer

import (
	"context"

	"library-backend/internal/domain"
)

// Patch carries optional customer overrides. Nil fields stay untouched.
// PhoneNumbers and HomeAddress, when present, replace the owned records
// wholesale.
type Patch struct {
	Email        *string
	FirstName    *string
	LastName     *string
	CampusID     *int64
	CanBorrow    *bool
	CanReserve   *bool
	HomeAddress  *domain.Address
	PhoneNumbers []domain.PhoneNumber
}

// Repository persists customers together with their exclusively owned
// address, phone numbers and cards.
type Repository interface {
	Create(ctx context.Context, c domain.Customer, initialCard domain.Card) (*domain.Customer, error)
	GetBySSN(ctx context.Context, ssn string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, ssn string, patch Patch) (*domain.Customer, error)
	SetState(ctx context.Context, ssn string, from, to domain.RecordState) error
}

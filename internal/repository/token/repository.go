package token

import (
	"context"
	"time"

	"library-backend/internal/domain"
)

// Token is a stored bearer session bound to an actor.
type Token struct {
	Token     string
	SSN       string
	Role      domain.Role
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Repository stores session tokens.
type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}

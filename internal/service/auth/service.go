package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domain"
	custrepo "library-backend/internal/repository/customer"
	librepo "library-backend/internal/repository/librarian"
	tokenrepo "library-backend/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("wrong email or password")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service authenticates customers and librarians and manages their bearer
// sessions.
type Service struct {
	customers  custrepo.Repository
	librarians librepo.Repository
	tokens     *tokenManager
	sessionTTL time.Duration
}

func New(customers custrepo.Repository, librarians librepo.Repository, tokens tokenrepo.Repository, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 48 * time.Hour
	}
	return &Service{
		customers:  customers,
		librarians: librarians,
		tokens:     newTokenManager(tokens),
		sessionTTL: sessionTTL,
	}
}

// LoginCustomer validates customer credentials and issues a session token.
// Disabled customers cannot log in.
func (s *Service) LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, error) {
	c, err := s.findCustomerByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if !c.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, c.SSN, domain.RoleCustomer, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return c, token, nil
}

// LoginLibrarian validates librarian credentials and issues a session token.
func (s *Service) LoginLibrarian(ctx context.Context, email, password string) (*domain.Librarian, string, error) {
	l, err := s.librarians.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(ctx, l.SSN, domain.RoleLibrarian, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return l, token, nil
}

// LookupByToken resolves a bearer token to its actor.
func (s *Service) LookupByToken(ctx context.Context, token string) (domain.Actor, error) {
	actor, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return domain.Actor{}, ErrInvalidToken
	}
	return actor, nil
}

// Logout revokes a session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

func (s *Service) findCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return c, nil
}

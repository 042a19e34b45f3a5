package customer

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domain"
	custrepo "library-backend/internal/repository/customer"
)

// Card validity windows. Students get four years on the initial card and
// one year per extension. Professors get a far-future window instead of a
// "never expires" sentinel, matching how the rest of the code treats
// expiration dates as plain values.
const (
	initialCardValidity   = 4 * 365 * 24 * time.Hour
	cardValidity          = 365 * 24 * time.Hour
	professorCardValidity = 100000 * 24 * time.Hour
)

const initialPasswordLen = 12

// Service handles customer registration and record maintenance.
type Service struct {
	repo     custrepo.Repository
	cards    cardRepo
	campuses campusRepo
}

type cardRepo interface {
	FindByPrefix(ctx context.Context, prefix string, limit int) ([]domain.Card, error)
	ExtendActive(ctx context.Context, customerSSN string, expiration time.Time) (*domain.Card, error)
}

type campusRepo interface {
	GetByID(ctx context.Context, addressID int64) (*domain.Campus, error)
}

func New(repo custrepo.Repository, cards cardRepo, campuses campusRepo) *Service {
	return &Service{repo: repo, cards: cards, campuses: campuses}
}

// AddressInput mirrors incoming address payloads.
type AddressInput struct {
	Street   string `json:"street"`
	Number   string `json:"number"`
	City     string `json:"city"`
	PostCode string `json:"postCode"`
	Country  string `json:"country"`
}

// PhoneNumberInput mirrors incoming phone number payloads.
type PhoneNumberInput struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
	Type        string `json:"type"`
}

// RegisterInput captures the fields expected at customer registration.
// Address and at least one phone number are mandatory.
type RegisterInput struct {
	SSN          string             `json:"ssn"`
	Email        string             `json:"email"`
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	CampusID     int64              `json:"campusId"`
	Type         string             `json:"type"`
	Address      *AddressInput      `json:"address"`
	PhoneNumbers []PhoneNumberInput `json:"phoneNumbers"`
}

// UpdateInput is a partial customer patch. Phone numbers, when supplied,
// replace the existing set wholesale.
type UpdateInput struct {
	Email        *string            `json:"email"`
	FirstName    *string            `json:"firstName"`
	LastName     *string            `json:"lastName"`
	CampusID     *int64             `json:"campusId"`
	CanBorrow    *bool              `json:"canBorrow"`
	CanReserve   *bool              `json:"canReserve"`
	Address      *AddressInput      `json:"address"`
	PhoneNumbers []PhoneNumberInput `json:"phoneNumbers"`
}

// Register creates a customer with its home address, phone numbers and an
// initial active card. The generated initial password is returned in plain
// text exactly once.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Customer, string, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if in.SSN == "" || email == "" || in.FirstName == "" || in.LastName == "" {
		return nil, "", fmt.Errorf("%w: ssn, email, firstName and lastName are required", domain.ErrInvalidRequest)
	}
	ctype := domain.CustomerType(in.Type)
	if !ctype.Valid() {
		return nil, "", fmt.Errorf("%w: unknown customer type %q", domain.ErrInvalidRequest, in.Type)
	}
	if in.Address == nil || len(in.PhoneNumbers) == 0 {
		return nil, "", fmt.Errorf("%w: address and phone numbers must not be empty", domain.ErrInvalidRequest)
	}
	addr, err := addressFromInput(*in.Address)
	if err != nil {
		return nil, "", err
	}
	phones, err := phoneNumbersFromInput(in.SSN, in.PhoneNumbers)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.campuses.GetByID(ctx, in.CampusID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: unknown campus %d", domain.ErrInvalidRequest, in.CampusID)
		}
		return nil, "", err
	}

	password, err := generatePassword(initialPasswordLen)
	if err != nil {
		return nil, "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	card := domain.Card{
		ID:             uuid.NewString(),
		CustomerSSN:    in.SSN,
		ExpirationDate: time.Now().UTC().Add(initialCardWindow(ctype)),
		IsActive:       true,
	}

	created, err := s.repo.Create(ctx, domain.Customer{
		SSN:          in.SSN,
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		CampusID:     in.CampusID,
		Type:         ctype,
		HomeAddress:  addr,
		PhoneNumbers: phones,
	}, card)
	if err != nil {
		return nil, "", err
	}
	return created, password, nil
}

func (s *Service) Get(ctx context.Context, ssn string) (*domain.Customer, error) {
	return s.repo.GetBySSN(ctx, ssn)
}

// FindByCardPrefix looks up cards whose identifier starts with the given
// prefix, capped at ten results.
func (s *Service) FindByCardPrefix(ctx context.Context, prefix string) ([]domain.Card, error) {
	if prefix == "" {
		return nil, fmt.Errorf("%w: card prefix must not be empty", domain.ErrInvalidRequest)
	}
	return s.cards.FindByPrefix(ctx, prefix, 10)
}

func (s *Service) Update(ctx context.Context, ssn string, in UpdateInput) (*domain.Customer, error) {
	patch := custrepo.Patch{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		CampusID:   in.CampusID,
		CanBorrow:  in.CanBorrow,
		CanReserve: in.CanReserve,
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrInvalidRequest)
		}
		patch.Email = &email
	}
	if in.CampusID != nil {
		if _, err := s.campuses.GetByID(ctx, *in.CampusID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown campus %d", domain.ErrInvalidRequest, *in.CampusID)
			}
			return nil, err
		}
	}
	if in.Address != nil {
		addr, err := addressFromInput(*in.Address)
		if err != nil {
			return nil, err
		}
		patch.HomeAddress = addr
	}
	if in.PhoneNumbers != nil {
		phones, err := phoneNumbersFromInput(ssn, in.PhoneNumbers)
		if err != nil {
			return nil, err
		}
		patch.PhoneNumbers = phones
	}
	return s.repo.Update(ctx, ssn, patch)
}

// Disable deactivates a customer; only valid while active.
func (s *Service) Disable(ctx context.Context, ssn string) error {
	return s.repo.SetState(ctx, ssn, domain.StateActive, domain.StateDisabled)
}

// Enable reactivates a customer; only valid while disabled.
func (s *Service) Enable(ctx context.Context, ssn string) error {
	return s.repo.SetState(ctx, ssn, domain.StateDisabled, domain.StateActive)
}

// ExtendCardValidity pushes the customer's active card expiration to
// now + the type-specific window, regardless of the prior expiration.
// Only active customers qualify.
func (s *Service) ExtendCardValidity(ctx context.Context, ssn string) (*domain.Card, error) {
	c, err := s.repo.GetBySSN(ctx, ssn)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, domain.ErrNotFound
	}
	return s.cards.ExtendActive(ctx, ssn, time.Now().UTC().Add(cardWindow(c.Type)))
}

func initialCardWindow(t domain.CustomerType) time.Duration {
	if t == domain.CustomerProfessor {
		return professorCardValidity
	}
	return initialCardValidity
}

func cardWindow(t domain.CustomerType) time.Duration {
	if t == domain.CustomerProfessor {
		return professorCardValidity
	}
	return cardValidity
}

func addressFromInput(in AddressInput) (*domain.Address, error) {
	if in.City == "" || in.PostCode == "" || in.Country == "" {
		return nil, fmt.Errorf("%w: address requires city, postCode and country", domain.ErrInvalidRequest)
	}
	return &domain.Address{
		Street:   in.Street,
		Number:   in.Number,
		City:     in.City,
		PostCode: in.PostCode,
		Country:  in.Country,
	}, nil
}

func phoneNumbersFromInput(ssn string, in []PhoneNumberInput) ([]domain.PhoneNumber, error) {
	phones := make([]domain.PhoneNumber, 0, len(in))
	for _, p := range in {
		if p.CountryCode == "" || p.Number == "" || p.Type == "" {
			return nil, fmt.Errorf("%w: phone numbers require countryCode, number and type", domain.ErrInvalidRequest)
		}
		phones = append(phones, domain.PhoneNumber{
			CustomerSSN: ssn,
			CountryCode: p.CountryCode,
			Number:      p.Number,
			Type:        p.Type,
		})
	}
	return phones, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generatePassword(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String(), nil
}

package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domain"
	custrepo "library-backend/internal/repository/customer"
)

// memoryRepo is a lightweight in-memory customer repository for tests.
type memoryRepo struct {
	customers map[string]domain.Customer
}

type memoryCardRepo struct {
	cards map[string]domain.Card // keyed by customer SSN, one active card each
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{customers: make(map[string]domain.Customer)}
}

func newMemoryCardRepo() *memoryCardRepo {
	return &memoryCardRepo{cards: make(map[string]domain.Card)}
}

func (r *memoryRepo) Create(_ context.Context, c domain.Customer, initialCard domain.Card) (*domain.Customer, error) {
	if _, exists := r.customers[c.SSN]; exists {
		return nil, domain.ErrAlreadyExists
	}
	c.CanBorrow = true
	c.CanReserve = true
	c.IsActive = true
	c.Cards = []domain.Card{initialCard}
	r.customers[c.SSN] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) GetBySSN(_ context.Context, ssn string) (*domain.Customer, error) {
	c, ok := r.customers[ssn]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Update(_ context.Context, ssn string, patch custrepo.Patch) (*domain.Customer, error) {
	c, ok := r.customers[ssn]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.FirstName != nil {
		c.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		c.LastName = *patch.LastName
	}
	if patch.CampusID != nil {
		c.CampusID = *patch.CampusID
	}
	if patch.CanBorrow != nil {
		c.CanBorrow = *patch.CanBorrow
	}
	if patch.CanReserve != nil {
		c.CanReserve = *patch.CanReserve
	}
	if patch.HomeAddress != nil {
		c.HomeAddress = patch.HomeAddress
	}
	if patch.PhoneNumbers != nil {
		c.PhoneNumbers = patch.PhoneNumbers
	}
	r.customers[ssn] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) SetState(_ context.Context, ssn string, from, to domain.RecordState) error {
	c, ok := r.customers[ssn]
	if !ok || c.State() != from {
		return domain.ErrNotFound
	}
	c.IsActive = to == domain.StateActive
	r.customers[ssn] = c
	return nil
}

func (r *memoryCardRepo) FindByPrefix(_ context.Context, prefix string, limit int) ([]domain.Card, error) {
	var result []domain.Card
	for _, c := range r.cards {
		if len(c.ID) >= len(prefix) && c.ID[:len(prefix)] == prefix {
			result = append(result, c)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *memoryCardRepo) ExtendActive(_ context.Context, ssn string, expiration time.Time) (*domain.Card, error) {
	c, ok := r.cards[ssn]
	if !ok || !c.IsActive {
		return nil, domain.ErrNotFound
	}
	c.ExpirationDate = expiration
	r.cards[ssn] = c
	clone := c
	return &clone, nil
}

// stubCampusRepo knows exactly one campus, address id 1.
type stubCampusRepo struct{}

func (stubCampusRepo) GetByID(_ context.Context, addressID int64) (*domain.Campus, error) {
	if addressID != 1 {
		return nil, domain.ErrNotFound
	}
	return &domain.Campus{AddressID: 1, Address: domain.Address{ID: 1, City: "Uppsala"}}, nil
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		SSN:       "850101-1234",
		Email:     "Anna.Svensson@example.com",
		FirstName: "Anna",
		LastName:  "Svensson",
		CampusID:  1,
		Type:      "STUDENT",
		Address:   &AddressInput{Street: "Main St", Number: "3", City: "Uppsala", PostCode: "75236", Country: "Sweden"},
		PhoneNumbers: []PhoneNumberInput{
			{CountryCode: "+46", Number: "701234567", Type: "mobile"},
		},
	}
}

func TestRegister_ReturnsUsablePassword(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryCardRepo(), stubCampusRepo{})

	created, password, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(password) != initialPasswordLen {
		t.Fatalf("expected %d-char password, got %q", initialPasswordLen, password)
	}
	if created.Email != "anna.svensson@example.com" {
		t.Fatalf("expected lowercased email, got %s", created.Email)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(password)); err != nil {
		t.Fatalf("stored hash does not match returned password: %v", err)
	}
	if !created.CanBorrow || !created.CanReserve || !created.IsActive {
		t.Fatalf("expected registration defaults, got %+v", created)
	}
	if len(created.Cards) != 1 || !created.Cards[0].IsActive {
		t.Fatalf("expected one active initial card, got %+v", created.Cards)
	}
}

func TestRegister_CardWindowDependsOnType(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryCardRepo(), stubCampusRepo{})

	in := validRegisterInput()
	student, _, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register student: %v", err)
	}

	in.SSN = "700202-5678"
	in.Email = "prof@example.com"
	in.Type = "PROFESSOR"
	professor, _, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register professor: %v", err)
	}

	studentExp := student.Cards[0].ExpirationDate
	professorExp := professor.Cards[0].ExpirationDate
	wantStudent := time.Now().UTC().Add(initialCardValidity)
	if studentExp.Before(wantStudent.Add(-time.Minute)) || studentExp.After(wantStudent.Add(time.Minute)) {
		t.Fatalf("expected student card to expire around %s, got %s", wantStudent, studentExp)
	}
	if !professorExp.After(studentExp.Add(365 * 24 * time.Hour)) {
		t.Fatalf("expected professor card to outlive student card by far: student=%s professor=%s", studentExp, professorExp)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryCardRepo(), stubCampusRepo{})

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing ssn", func(in *RegisterInput) { in.SSN = "" }},
		{"missing email", func(in *RegisterInput) { in.Email = "  " }},
		{"unknown type", func(in *RegisterInput) { in.Type = "STAFF" }},
		{"no address", func(in *RegisterInput) { in.Address = nil }},
		{"no phone numbers", func(in *RegisterInput) { in.PhoneNumbers = nil }},
		{"address missing city", func(in *RegisterInput) { in.Address.City = "" }},
		{"phone missing number", func(in *RegisterInput) { in.PhoneNumbers[0].Number = "" }},
		{"unknown campus", func(in *RegisterInput) { in.CampusID = 99 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegisterInput()
			tc.mutate(&in)
			if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestExtendCardValidity(t *testing.T) {
	repo := newMemoryRepo()
	cards := newMemoryCardRepo()
	svc := New(repo, cards, stubCampusRepo{})

	repo.customers["1"] = domain.Customer{SSN: "1", Type: domain.CustomerStudent, IsActive: true}
	cards.cards["1"] = domain.Card{ID: "card-1", CustomerSSN: "1", IsActive: true}

	before := time.Now().UTC()
	card, err := svc.ExtendCardValidity(context.Background(), "1")
	if err != nil {
		t.Fatalf("extend: %v", err)
	}
	min := before.Add(cardValidity - time.Minute)
	max := before.Add(cardValidity + time.Minute)
	if card.ExpirationDate.Before(min) || card.ExpirationDate.After(max) {
		t.Fatalf("expected expiration about one year out, got %s", card.ExpirationDate)
	}
}

func TestExtendCardValidity_InactiveCustomer(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, newMemoryCardRepo(), stubCampusRepo{})

	repo.customers["1"] = domain.Customer{SSN: "1", IsActive: false}
	if _, err := svc.ExtendCardValidity(context.Background(), "1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByCardPrefix_EmptyPrefix(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryCardRepo(), stubCampusRepo{})
	if _, err := svc.FindByCardPrefix(context.Background(), ""); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

package customer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Create inserts the customer, its home address, its phone numbers and the
// initial card in one transaction. Any failure rolls the whole group back.
func (r *postgresRepo) Create(ctx context.Context, c domain.Customer, initialCard domain.Card) (*domain.Customer, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var addressID int64
	if err := tx.QueryRow(ctx, `
INSERT INTO address (street, number, city, post_code, country)
VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4, $5)
RETURNING id
`, c.HomeAddress.Street, c.HomeAddress.Number, c.HomeAddress.City, c.HomeAddress.PostCode, c.HomeAddress.Country).Scan(&addressID); err != nil {
		return nil, translateErr(err)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO customer (ssn, email, password_hash, first_name, last_name, campus_id, type, home_address_id, can_borrow, can_reserve, books_borrowed, books_reserved, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, TRUE, 0, 0, TRUE)
`, c.SSN, strings.ToLower(c.Email), c.PasswordHash, c.FirstName, c.LastName, c.CampusID, c.Type, addressID); err != nil {
		r.logger.Printf("customer repo: create ssn=%s error=%v", c.SSN, err)
		return nil, translateErr(err)
	}

	for _, p := range c.PhoneNumbers {
		if _, err := tx.Exec(ctx, `
INSERT INTO phone_number (customer_ssn, country_code, number, type)
VALUES ($1, $2, $3, $4)
`, c.SSN, p.CountryCode, p.Number, p.Type); err != nil {
			return nil, translateErr(err)
		}
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO card (id, customer_ssn, expiration_date, photo_path, is_active)
VALUES ($1, $2, $3, $4, TRUE)
`, initialCard.ID, c.SSN, initialCard.ExpirationDate, initialCard.PhotoPath); err != nil {
		return nil, translateErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetBySSN(ctx, c.SSN)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `
SELECT ssn
FROM customer
WHERE lower(email) = lower($1)
LIMIT 1
`
	var ssn string
	if err := r.pool.QueryRow(ctx, q, email).Scan(&ssn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetBySSN(ctx, ssn)
}

func (r *postgresRepo) GetBySSN(ctx context.Context, ssn string) (*domain.Customer, error) {
	const q = `
SELECT c.ssn, c.email, c.password_hash, c.first_name, c.last_name, c.campus_id, c.type,
       c.can_borrow, c.can_reserve, c.books_borrowed, c.books_reserved, c.is_active,
       a.id, COALESCE(a.street, ''), COALESCE(a.number, ''), a.city, a.post_code, a.country
FROM customer c
JOIN address a ON a.id = c.home_address_id
WHERE c.ssn = $1
`
	var c domain.Customer
	var addr domain.Address
	err := r.pool.QueryRow(ctx, q, ssn).Scan(
		&c.SSN,
		&c.Email,
		&c.PasswordHash,
		&c.FirstName,
		&c.LastName,
		&c.CampusID,
		&c.Type,
		&c.CanBorrow,
		&c.CanReserve,
		&c.BooksBorrowed,
		&c.BooksReserved,
		&c.IsActive,
		&addr.ID,
		&addr.Street,
		&addr.Number,
		&addr.City,
		&addr.PostCode,
		&addr.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: get ssn=%s error=%v", ssn, err)
		return nil, err
	}
	c.HomeAddress = &addr

	if c.PhoneNumbers, err = r.fetchPhoneNumbers(ctx, ssn); err != nil {
		return nil, err
	}
	if c.Cards, err = r.fetchCards(ctx, ssn); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Update(ctx context.Context, ssn string, patch Patch) (*domain.Customer, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var email *string
	if patch.Email != nil {
		lowered := strings.ToLower(*patch.Email)
		email = &lowered
	}

	var homeAddressID int64
	cmdRow := tx.QueryRow(ctx, `
UPDATE customer
SET email = COALESCE($2, email),
    first_name = COALESCE($3, first_name),
    last_name = COALESCE($4, last_name),
    campus_id = COALESCE($5, campus_id),
    can_borrow = COALESCE($6, can_borrow),
    can_reserve = COALESCE($7, can_reserve)
WHERE ssn = $1
RETURNING home_address_id
`, ssn, email, patch.FirstName, patch.LastName, patch.CampusID, patch.CanBorrow, patch.CanReserve)
	if err := cmdRow.Scan(&homeAddressID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("customer repo: update ssn=%s error=%v", ssn, err)
		return nil, translateErr(err)
	}

	if patch.HomeAddress != nil {
		if _, err := tx.Exec(ctx, `
UPDATE address
SET street = NULLIF($2, ''), number = NULLIF($3, ''), city = $4, post_code = $5, country = $6
WHERE id = $1
`, homeAddressID, patch.HomeAddress.Street, patch.HomeAddress.Number, patch.HomeAddress.City, patch.HomeAddress.PostCode, patch.HomeAddress.Country); err != nil {
			return nil, translateErr(err)
		}
	}

	// Phone numbers are never partially patched: the old set is dropped and
	// the supplied set appended.
	if patch.PhoneNumbers != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM phone_number WHERE customer_ssn = $1`, ssn); err != nil {
			return nil, err
		}
		for _, p := range patch.PhoneNumbers {
			if _, err := tx.Exec(ctx, `
INSERT INTO phone_number (customer_ssn, country_code, number, type)
VALUES ($1, $2, $3, $4)
`, ssn, p.CountryCode, p.Number, p.Type); err != nil {
				return nil, translateErr(err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetBySSN(ctx, ssn)
}

// SetState flips is_active with the source state in the WHERE clause, so a
// missing customer and one already in the target state are indistinguishable.
func (r *postgresRepo) SetState(ctx context.Context, ssn string, from, to domain.RecordState) error {
	const q = `
UPDATE customer
SET is_active = $2
WHERE ssn = $1 AND is_active = $3
`
	cmd, err := r.pool.Exec(ctx, q, ssn, to == domain.StateActive, from == domain.StateActive)
	if err != nil {
		r.logger.Printf("customer repo: set state ssn=%s error=%v", ssn, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchPhoneNumbers(ctx context.Context, ssn string) ([]domain.PhoneNumber, error) {
	rows, err := r.pool.Query(ctx, `
SELECT customer_ssn, country_code, number, type
FROM phone_number
WHERE customer_ssn = $1
ORDER BY country_code, number
`, ssn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PhoneNumber
	for rows.Next() {
		var p domain.PhoneNumber
		if err := rows.Scan(&p.CustomerSSN, &p.CountryCode, &p.Number, &p.Type); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) fetchCards(ctx context.Context, ssn string) ([]domain.Card, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, customer_ssn, expiration_date, COALESCE(photo_path, ''), is_active
FROM card
WHERE customer_ssn = $1
ORDER BY expiration_date DESC
`, ssn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(&c.ID, &c.CustomerSSN, &c.ExpirationDate, &c.PhotoPath, &c.IsActive); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			return domain.ErrNotFound
		}
	}
	return err
}

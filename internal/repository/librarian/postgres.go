package librarian

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Librarian, error) {
	const q = `
SELECT ssn, email, password_hash, first_name, last_name, position
FROM librarian
WHERE lower(email) = lower($1)
LIMIT 1
`
	return scanLibrarian(r.pool.QueryRow(ctx, q, email))
}

func (r *postgresRepo) GetBySSN(ctx context.Context, ssn string) (*domain.Librarian, error) {
	const q = `
SELECT ssn, email, password_hash, first_name, last_name, position
FROM librarian
WHERE ssn = $1
`
	return scanLibrarian(r.pool.QueryRow(ctx, q, ssn))
}

func scanLibrarian(row pgx.Row) (*domain.Librarian, error) {
	var l domain.Librarian
	err := row.Scan(&l.SSN, &l.Email, &l.PasswordHash, &l.FirstName, &l.LastName, &l.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

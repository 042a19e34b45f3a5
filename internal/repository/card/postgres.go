package card

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// FindByPrefix matches card ids literally, so wildcard characters in the
// prefix do not widen the match.
func (r *postgresRepo) FindByPrefix(ctx context.Context, prefix string, limit int) ([]domain.Card, error) {
	const q = `
SELECT id, customer_ssn, expiration_date, COALESCE(photo_path, ''), is_active
FROM card
WHERE id LIKE $1 || '%'
ORDER BY id
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, likeEscaper.Replace(prefix), limit)
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

// ExtendActive pushes the active card's expiration to the given instant,
// regardless of its current value.
func (r *postgresRepo) ExtendActive(ctx context.Context, customerSSN string, expiration time.Time) (*domain.Card, error) {
	const q = `
UPDATE card
SET expiration_date = $2
WHERE customer_ssn = $1 AND is_active = TRUE
RETURNING id, customer_ssn, expiration_date, COALESCE(photo_path, ''), is_active
`
	var c domain.Card
	err := r.pool.QueryRow(ctx, q, customerSSN, expiration).Scan(&c.ID, &c.CustomerSSN, &c.ExpirationDate, &c.PhotoPath, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

package campus

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
)

const campusQuery = `
SELECT cp.address_id, a.id, COALESCE(a.street, ''), COALESCE(a.number, ''), a.city, a.post_code, a.country
FROM campus cp
JOIN address a ON a.id = cp.address_id
`

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Campus, error) {
	rows, err := r.pool.Query(ctx, campusQuery+`ORDER BY a.city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Campus
	for rows.Next() {
		c, err := scanCampus(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, addressID int64) (*domain.Campus, error) {
	return scanCampus(r.pool.QueryRow(ctx, campusQuery+`WHERE cp.address_id = $1`, addressID))
}

func scanCampus(row pgx.Row) (*domain.Campus, error) {
	var c domain.Campus
	err := row.Scan(
		&c.AddressID,
		&c.Address.ID,
		&c.Address.Street,
		&c.Address.Number,
		&c.Address.City,
		&c.Address.PostCode,
		&c.Address.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

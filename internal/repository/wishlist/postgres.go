package wishlist

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
)

const customerItemColumns = `id, customer_ssn, book_isbn, requested_at, picked_up`

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

func (r *postgresRepo) AddCustomerItem(ctx context.Context, item domain.CustomerWishlistItem) (*domain.CustomerWishlistItem, error) {
	const q = `
INSERT INTO customer_wishlist_item (id, customer_ssn, book_isbn, requested_at, picked_up)
VALUES ($1, $2, $3, NULL, FALSE)
RETURNING ` + customerItemColumns
	out, err := scanCustomerItem(r.pool.QueryRow(ctx, q, item.ID, item.CustomerSSN, item.BookISBN))
	if err != nil {
		r.logger.Printf("wishlist repo: add customer=%s isbn=%s error=%v", item.CustomerSSN, item.BookISBN, err)
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postgresRepo) RemoveCustomerItem(ctx context.Context, customerSSN, id string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM customer_wishlist_item
WHERE id = $1 AND customer_ssn = $2
`, id, customerSSN)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) RequestPickup(ctx context.Context, customerSSN, id string, requestedAt time.Time) (*domain.CustomerWishlistItem, error) {
	const q = `
UPDATE customer_wishlist_item
SET requested_at = $3
WHERE id = $1 AND customer_ssn = $2
RETURNING ` + customerItemColumns
	out, err := scanCustomerItem(r.pool.QueryRow(ctx, q, id, customerSSN, requestedAt))
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerSSN string) ([]domain.CustomerWishlistItem, error) {
	const q = `
SELECT ` + customerItemColumns + `
FROM customer_wishlist_item
WHERE customer_ssn = $1
ORDER BY book_isbn
`
	return r.queryCustomerItems(ctx, q, customerSSN)
}

// ListPendingReservations surfaces requested, not-yet-picked-up items newer
// than the given cutoff. Stale reservations expire by falling outside the
// window; they are never deleted.
func (r *postgresRepo) ListPendingReservations(ctx context.Context, since time.Time) ([]domain.CustomerWishlistItem, error) {
	const q = `
SELECT ` + customerItemColumns + `
FROM customer_wishlist_item
WHERE requested_at IS NOT NULL AND requested_at > $1 AND picked_up = FALSE
ORDER BY requested_at ASC
`
	return r.queryCustomerItems(ctx, q, since)
}

func (r *postgresRepo) MarkPickedUp(ctx context.Context, id string) (*domain.CustomerWishlistItem, error) {
	const q = `
UPDATE customer_wishlist_item
SET picked_up = TRUE
WHERE id = $1 AND requested_at IS NOT NULL AND picked_up = FALSE
RETURNING ` + customerItemColumns
	out, err := scanCustomerItem(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postgresRepo) AddLibrarianItem(ctx context.Context, item domain.LibrarianWishlistItem) (*domain.LibrarianWishlistItem, error) {
	const q = `
INSERT INTO librarian_wishlist_item (id, title, description)
VALUES ($1, $2, NULLIF($3, ''))
RETURNING id, title, COALESCE(description, '')
`
	var out domain.LibrarianWishlistItem
	if err := r.pool.QueryRow(ctx, q, item.ID, item.Title, item.Description).Scan(&out.ID, &out.Title, &out.Description); err != nil {
		r.logger.Printf("wishlist repo: add librarian item title=%q error=%v", item.Title, err)
		return nil, translateErr(err)
	}
	return &out, nil
}

func (r *postgresRepo) RemoveLibrarianItem(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM librarian_wishlist_item WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListLibrarianItems(ctx context.Context) ([]domain.LibrarianWishlistItem, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, COALESCE(description, '')
FROM librarian_wishlist_item
ORDER BY title
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LibrarianWishlistItem
	for rows.Next() {
		var item domain.LibrarianWishlistItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *postgresRepo) queryCustomerItems(ctx context.Context, q string, args ...interface{}) ([]domain.CustomerWishlistItem, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomerWishlistItem
	for rows.Next() {
		item, err := scanCustomerItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, rows.Err()
}

func scanCustomerItem(row pgx.Row) (*domain.CustomerWishlistItem, error) {
	var item domain.CustomerWishlistItem
	if err := row.Scan(&item.ID, &item.CustomerSSN, &item.BookISBN, &item.RequestedAt, &item.PickedUp); err != nil {
		return nil, err
	}
	return &item, nil
}

func translateErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
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

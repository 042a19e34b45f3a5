package loan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
)

const loanColumns = `id, book_isbn, customer_ssn, issued_by, loaned_at, returned_at`

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

// Open checks out a book. The stock decrement and the loan insert commit or
// roll back together; a book that is disabled, not loanable or out of copies
// fails the whole operation.
func (r *postgresRepo) Open(ctx context.Context, l domain.Loan) (*domain.Loan, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var deleted, loanable bool
	var available int
	err = tx.QueryRow(ctx, `
SELECT deleted, is_loanable, available_copies
FROM book
WHERE isbn = $1
FOR UPDATE
`, l.BookISBN).Scan(&deleted, &loanable, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	switch {
	case deleted:
		return nil, domain.ErrNotFound
	case !loanable:
		return nil, fmt.Errorf("%w: book %s is not loanable", domain.ErrInvalidRequest, l.BookISBN)
	case available <= 0:
		return nil, fmt.Errorf("%w: no available copies of %s", domain.ErrInvalidRequest, l.BookISBN)
	}

	var active, canBorrow bool
	err = tx.QueryRow(ctx, `
SELECT is_active, can_borrow
FROM customer
WHERE ssn = $1
FOR UPDATE
`, l.CustomerSSN).Scan(&active, &canBorrow)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !active {
		return nil, domain.ErrNotFound
	}
	if !canBorrow {
		return nil, fmt.Errorf("%w: customer %s may not borrow", domain.ErrInvalidRequest, l.CustomerSSN)
	}

	if _, err := tx.Exec(ctx, `
UPDATE book SET available_copies = available_copies - 1 WHERE isbn = $1
`, l.BookISBN); err != nil {
		return nil, translateErr(err)
	}
	if _, err := tx.Exec(ctx, `
UPDATE customer SET books_borrowed = books_borrowed + 1 WHERE ssn = $1
`, l.CustomerSSN); err != nil {
		return nil, translateErr(err)
	}

	var out domain.Loan
	err = tx.QueryRow(ctx, `
INSERT INTO loan (id, book_isbn, customer_ssn, issued_by, loaned_at, returned_at)
VALUES ($1, $2, $3, $4, $5, NULL)
RETURNING `+loanColumns, l.ID, l.BookISBN, l.CustomerSSN, l.IssuedBy, l.LoanedAt).Scan(
		&out.ID, &out.BookISBN, &out.CustomerSSN, &out.IssuedBy, &out.LoanedAt, &out.ReturnedAt,
	)
	if err != nil {
		r.logger.Printf("loan repo: open isbn=%s customer=%s error=%v", l.BookISBN, l.CustomerSSN, err)
		return nil, translateErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

// Close returns a book. Only open loans qualify; the stock increment happens
// in the same transaction as stamping returned_at.
func (r *postgresRepo) Close(ctx context.Context, id string, returnedAt time.Time) (*domain.Loan, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var out domain.Loan
	err = tx.QueryRow(ctx, `
UPDATE loan
SET returned_at = $2
WHERE id = $1 AND returned_at IS NULL
RETURNING `+loanColumns, id, returnedAt).Scan(
		&out.ID, &out.BookISBN, &out.CustomerSSN, &out.IssuedBy, &out.LoanedAt, &out.ReturnedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
UPDATE book SET available_copies = available_copies + 1 WHERE isbn = $1
`, out.BookISBN); err != nil {
		r.logger.Printf("loan repo: close id=%s stock error=%v", id, err)
		return nil, translateErr(err)
	}
	if _, err := tx.Exec(ctx, `
UPDATE customer SET books_borrowed = GREATEST(books_borrowed - 1, 0) WHERE ssn = $1
`, out.CustomerSSN); err != nil {
		return nil, translateErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	const q = `
SELECT ` + loanColumns + `
FROM loan
WHERE id = $1
`
	var out domain.Loan
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&out.ID, &out.BookISBN, &out.CustomerSSN, &out.IssuedBy, &out.LoanedAt, &out.ReturnedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListActiveByCustomer(ctx context.Context, customerSSN string) ([]domain.Loan, error) {
	const q = `
SELECT ` + loanColumns + `
FROM loan
WHERE customer_ssn = $1 AND returned_at IS NULL
ORDER BY loaned_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerSSN)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.BookISBN, &l.CustomerSSN, &l.IssuedBy, &l.LoanedAt, &l.ReturnedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
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
		case "23514":
			return domain.ErrInvalidRequest
		}
	}
	return err
}

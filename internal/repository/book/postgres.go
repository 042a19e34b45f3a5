package book

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domain"
)

const bookColumns = `isbn, title, author, subject_area, COALESCE(description, ''), resource_type, is_loanable, total_copies, available_copies, deleted`

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

func (r *postgresRepo) Create(ctx context.Context, b domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO book (isbn, title, author, subject_area, description, resource_type, is_loanable, total_copies, available_copies, deleted)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, FALSE)
RETURNING ` + bookColumns
	row := r.pool.QueryRow(ctx, q,
		b.ISBN,
		b.Title,
		b.Author,
		b.SubjectArea,
		b.Description,
		b.ResourceType,
		b.IsLoanable,
		b.TotalCopies,
		b.AvailableCopies,
	)
	out, err := scanBook(row)
	if err != nil {
		r.logger.Printf("book repo: create isbn=%s error=%v", b.ISBN, err)
		return nil, translateErr(err)
	}
	return out, nil
}

// Upsert inserts the book or refreshes its metadata and stock in place.
// Imports use it so re-running the same file converges instead of failing.
func (r *postgresRepo) Upsert(ctx context.Context, b domain.Book) (*domain.Book, error) {
	const q = `
INSERT INTO book (isbn, title, author, subject_area, description, resource_type, is_loanable, total_copies, available_copies, deleted)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, FALSE)
ON CONFLICT (isbn) DO UPDATE
SET title = EXCLUDED.title,
    author = EXCLUDED.author,
    subject_area = EXCLUDED.subject_area,
    description = EXCLUDED.description,
    resource_type = EXCLUDED.resource_type,
    is_loanable = EXCLUDED.is_loanable,
    total_copies = EXCLUDED.total_copies,
    available_copies = EXCLUDED.available_copies
RETURNING ` + bookColumns
	row := r.pool.QueryRow(ctx, q,
		b.ISBN,
		b.Title,
		b.Author,
		b.SubjectArea,
		b.Description,
		b.ResourceType,
		b.IsLoanable,
		b.TotalCopies,
		b.AvailableCopies,
	)
	out, err := scanBook(row)
	if err != nil {
		r.logger.Printf("book repo: upsert isbn=%s error=%v", b.ISBN, err)
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postgresRepo) GetByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	const q = `
SELECT ` + bookColumns + `
FROM book
WHERE isbn = $1
`
	out, err := scanBook(r.pool.QueryRow(ctx, q, isbn))
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postgresRepo) UpdateMetadata(ctx context.Context, isbn string, patch MetadataPatch) (*domain.Book, error) {
	const q = `
UPDATE book
SET title = COALESCE($2, title),
    author = COALESCE($3, author),
    subject_area = COALESCE($4, subject_area),
    description = COALESCE($5, description),
    resource_type = COALESCE($6, resource_type),
    is_loanable = COALESCE($7, is_loanable)
WHERE isbn = $1 AND deleted = FALSE
RETURNING ` + bookColumns
	out, err := scanBook(r.pool.QueryRow(ctx, q, isbn,
		patch.Title,
		patch.Author,
		patch.SubjectArea,
		patch.Description,
		patch.ResourceType,
		patch.IsLoanable,
	))
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

func (r *postgresRepo) UpdateStock(ctx context.Context, isbn string, total, available int) (*domain.Book, error) {
	const q = `
UPDATE book
SET total_copies = $2,
    available_copies = $3
WHERE isbn = $1 AND deleted = FALSE
RETURNING ` + bookColumns
	out, err := scanBook(r.pool.QueryRow(ctx, q, isbn, total, available))
	if err != nil {
		return nil, translateErr(err)
	}
	return out, nil
}

// SetState flips the soft-delete flag. The source state is part of the WHERE
// clause, so a record that is missing or already in the target state affects
// zero rows and reports ErrNotFound.
func (r *postgresRepo) SetState(ctx context.Context, isbn string, from, to domain.RecordState) error {
	const q = `
UPDATE book
SET deleted = $2
WHERE isbn = $1 AND deleted = $3
`
	cmd, err := r.pool.Exec(ctx, q, isbn, to == domain.StateDisabled, from == domain.StateDisabled)
	if err != nil {
		r.logger.Printf("book repo: set state isbn=%s error=%v", isbn, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *postgresRepo) Search(ctx context.Context, q SearchQuery) ([]domain.Book, error) {
	// The phrase is escaped so wildcard characters match literally.
	phrase := "%" + likeEscaper.Replace(q.Phrase) + "%"
	matches := make([]exp.Expression, 0, len(q.Columns))
	for _, col := range q.Columns {
		// LIKE keeps the match case-sensitive.
		matches = append(matches, goqu.C(col).Like(phrase))
	}

	ds := goqu.Dialect("postgres").
		From("book").
		Select(
			goqu.C("isbn"),
			goqu.C("title"),
			goqu.C("author"),
			goqu.C("subject_area"),
			goqu.COALESCE(goqu.C("description"), "").As("description"),
			goqu.C("resource_type"),
			goqu.C("is_loanable"),
			goqu.C("total_copies"),
			goqu.C("available_copies"),
			goqu.C("deleted"),
		).
		Where(goqu.C("deleted").IsFalse(), goqu.Or(matches...))

	if len(q.Types) > 0 {
		types := make([]string, 0, len(q.Types))
		for _, t := range q.Types {
			types = append(types, string(t))
		}
		ds = ds.Where(goqu.C("resource_type").In(types))
	}

	// Deterministic order keeps pagination stable across calls.
	ds = ds.Order(goqu.C("isbn").Asc()).
		Limit(uint(q.Limit)).
		Offset(uint(q.Offset))

	sqlQuery, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sqlQuery, args...)
	if err != nil {
		r.logger.Printf("book repo: search phrase=%q error=%v", q.Phrase, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("book repo: search phrase=%q count=%d", q.Phrase, len(result))
	return result, nil
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var b domain.Book
	err := row.Scan(
		&b.ISBN,
		&b.Title,
		&b.Author,
		&b.SubjectArea,
		&b.Description,
		&b.ResourceType,
		&b.IsLoanable,
		&b.TotalCopies,
		&b.AvailableCopies,
		&b.Deleted,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
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
		case "23514":
			return domain.ErrInvalidRequest
		}
	}
	return err
}

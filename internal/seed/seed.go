package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type campusSeed struct {
	Street   string
	Number   string
	City     string
	PostCode string
	Country  string
}

type bookSeed struct {
	ISBN         string
	Title        string
	Author       string
	SubjectArea  string
	Description  string
	ResourceType string
	Copies       int
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	campuses := []campusSeed{
		{Street: "University Avenue", Number: "1", City: "Uppsala", PostCode: "75236", Country: "Sweden"},
		{Street: "Campus Road", Number: "12", City: "Stockholm", PostCode: "11428", Country: "Sweden"},
	}
	for _, c := range campuses {
		if _, err := ensureCampus(ctx, pool, c); err != nil {
			return fmt.Errorf("ensure campus %s: %w", c.City, err)
		}
	}

	if err := upsertLibrarian(ctx, pool, "000000-0000", "admin@library.local", "admin", "Head", "Librarian", "administrator"); err != nil {
		return fmt.Errorf("upsert librarian: %w", err)
	}

	books := []bookSeed{
		{
			ISBN:         "9780134190440",
			Title:        "The Go Programming Language",
			Author:       "Alan A. A. Donovan",
			SubjectArea:  "Computer Science",
			Description:  "A comprehensive introduction to Go",
			ResourceType: "BOOK",
			Copies:       3,
		},
		{
			ISBN:         "9780201633610",
			Title:        "Design Patterns",
			Author:       "Erich Gamma",
			SubjectArea:  "Computer Science",
			Description:  "Elements of reusable object-oriented software",
			ResourceType: "BOOK",
			Copies:       2,
		},
		{
			ISBN:         "9991119103",
			Title:        "Scandinavian Cartography Review",
			Author:       "Nordic Geographic Society",
			SubjectArea:  "Geography",
			Description:  "",
			ResourceType: "JOURNAL",
			Copies:       1,
		},
	}
	for _, b := range books {
		if err := upsertBook(ctx, pool, b); err != nil {
			return fmt.Errorf("upsert book %s: %w", b.ISBN, err)
		}
	}

	return nil
}

// ensureCampus looks the campus up by city and creates the address and campus
// rows when missing. Addresses use generated ids, so plain ON CONFLICT cannot
// make the pair idempotent.
func ensureCampus(ctx context.Context, pool *pgxpool.Pool, c campusSeed) (int64, error) {
	const lookup = `
SELECT cp.address_id
FROM campus cp
JOIN address a ON a.id = cp.address_id
WHERE a.city = $1 AND a.post_code = $2
`
	var id int64
	err := pool.QueryRow(ctx, lookup, c.City, c.PostCode).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `
INSERT INTO address (street, number, city, post_code, country)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`, c.Street, c.Number, c.City, c.PostCode, c.Country).Scan(&id); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO campus (address_id) VALUES ($1)`, id); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func upsertLibrarian(ctx context.Context, pool *pgxpool.Pool, ssn, email, password, firstName, lastName, position string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO librarian (ssn, email, password_hash, first_name, last_name, position)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (ssn) DO UPDATE
SET email = EXCLUDED.email,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    position = EXCLUDED.position
`
	_, err = pool.Exec(ctx, q, ssn, email, string(hash), firstName, lastName, position)
	return err
}

func upsertBook(ctx context.Context, pool *pgxpool.Pool, b bookSeed) error {
	const q = `
INSERT INTO book (isbn, title, author, subject_area, description, resource_type, is_loanable, total_copies, available_copies, deleted)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, TRUE, $7, $7, FALSE)
ON CONFLICT (isbn) DO UPDATE
SET title = EXCLUDED.title,
    author = EXCLUDED.author,
    subject_area = EXCLUDED.subject_area,
    description = EXCLUDED.description,
    resource_type = EXCLUDED.resource_type
`
	_, err := pool.Exec(ctx, q, b.ISBN, b.Title, b.Author, b.SubjectArea, b.Description, b.ResourceType, b.Copies)
	return err
}

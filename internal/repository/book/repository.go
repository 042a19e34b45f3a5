package book

import (
	"context"

	"library-backend/internal/domain"
)

// MetadataPatch carries optional metadata overrides. Nil fields are left
// untouched (partial-update semantics).
type MetadataPatch struct {
	Title        *string
	Author       *string
	SubjectArea  *string
	Description  *string
	ResourceType *domain.ResourceType
	IsLoanable   *bool
}

// SearchQuery is a fully validated catalog search. Columns holds database
// column names; the phrase is matched as a case-sensitive substring against
// each of them, combined with OR.
type SearchQuery struct {
	Phrase  string
	Columns []string
	Types   []domain.ResourceType
	Offset  int
	Limit   int
}

// Repository persists and fetches catalog books.
type Repository interface {
	Create(ctx context.Context, b domain.Book) (*domain.Book, error)
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	UpdateMetadata(ctx context.Context, isbn string, patch MetadataPatch) (*domain.Book, error)
	UpdateStock(ctx context.Context, isbn string, total, available int) (*domain.Book, error)
	SetState(ctx context.Context, isbn string, from, to domain.RecordState) error
	Search(ctx context.Context, q SearchQuery) ([]domain.Book, error)
}

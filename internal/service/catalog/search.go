package catalog

import (
	"context"

	"library-backend/internal/domain"
	bookrepo "library-backend/internal/repository/book"
)

// Search groups; EVERYTHING is a wildcard covering all resource types.
const (
	GroupEverything = "EVERYTHING"
	GroupBook       = "BOOK"
	GroupArticle    = "ARTICLE"
	GroupJournal    = "JOURNAL"
	GroupMap        = "MAP"
)

// Searchable column identifiers and their database columns.
const (
	ColumnTitle  = "TITLE"
	ColumnAuthor = "AUTHOR"
	ColumnArea   = "AREA"
)

var searchColumns = map[string]string{
	ColumnTitle:  "title",
	ColumnAuthor: "author",
	ColumnArea:   "subject_area",
}

var searchGroups = map[string]domain.ResourceType{
	GroupBook:    domain.ResourceBook,
	GroupArticle: domain.ResourceArticle,
	GroupJournal: domain.ResourceJournal,
	GroupMap:     domain.ResourceMap,
}

// SearchInput is a catalog search request. The whole request is rejected when
// any constraint fails; there is no per-field error reporting.
type SearchInput struct {
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
	Phrase  string   `json:"phrase"`
	Group   string   `json:"group"`
	Columns []string `json:"columns"`
}

// Valid performs the atomic validity check: offset >= 0, limit >= 5,
// non-empty phrase, known group and at least one known column.
func (in SearchInput) Valid() bool {
	if in.Offset < 0 || in.Limit < 5 || in.Phrase == "" {
		return false
	}
	if _, ok := searchGroups[in.Group]; !ok && in.Group != GroupEverything {
		return false
	}
	if len(in.Columns) == 0 {
		return false
	}
	for _, col := range in.Columns {
		if _, ok := searchColumns[col]; !ok {
			return false
		}
	}
	return true
}

// Search runs a validated phrase search against the catalog. The phrase is
// matched case-sensitively as a substring of each selected column, OR-ed
// together, restricted to the selected resource group and paginated in
// ISBN order.
func (s *Service) Search(ctx context.Context, in SearchInput) ([]domain.Book, error) {
	if !in.Valid() {
		return nil, domain.ErrInvalidRequest
	}

	columns := make([]string, 0, len(in.Columns))
	seen := make(map[string]bool, len(in.Columns))
	for _, col := range in.Columns {
		dbCol := searchColumns[col]
		if !seen[dbCol] {
			seen[dbCol] = true
			columns = append(columns, dbCol)
		}
	}

	var types []domain.ResourceType
	if in.Group != GroupEverything {
		types = []domain.ResourceType{searchGroups[in.Group]}
	}

	return s.repo.Search(ctx, bookrepo.SearchQuery{
		Phrase:  in.Phrase,
		Columns: columns,
		Types:   types,
		Offset:  in.Offset,
		Limit:   in.Limit,
	})
}

package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"library-backend/internal/domain"
)

type BookWriter interface {
	Upsert(ctx context.Context, book domain.Book) (*domain.Book, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates books.
type CSVImporter struct {
	reader   *csv.Reader
	bookRepo BookWriter
}

func NewCSVImporter(r io.Reader, repo BookWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		bookRepo: repo,
	}
}

type csvRow struct {
	ISBN         string
	Title        string
	Author       string
	SubjectArea  string
	Description  string
	ResourceType string
	IsLoanable   bool
	Copies       int
}

// Run parses CSV rows and upserts each book by ISBN.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var imported int
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.ISBN == "" || row.Title == "" || row.Author == "" || row.SubjectArea == "" {
		return fmt.Errorf("invalid book row (missing required fields) for isbn %q", row.ISBN)
	}
	resourceType := domain.ResourceType(row.ResourceType)
	if !resourceType.Valid() {
		return fmt.Errorf("invalid resource type for isbn %q: %s", row.ISBN, row.ResourceType)
	}
	if row.Copies < 0 {
		return fmt.Errorf("negative copy count for isbn %q", row.ISBN)
	}

	b := domain.Book{
		ISBN:            row.ISBN,
		Title:           row.Title,
		Author:          row.Author,
		SubjectArea:     row.SubjectArea,
		Description:     row.Description,
		ResourceType:    resourceType,
		IsLoanable:      row.IsLoanable,
		TotalCopies:     row.Copies,
		AvailableCopies: row.Copies,
	}

	if _, err := i.bookRepo.Upsert(ctx, b); err != nil {
		return fmt.Errorf("upsert book %q: %w", row.ISBN, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	isbn := pick(record, index, "isbn")
	if isbn == "" {
		return nil
	}

	copies := 0
	if s := pick(record, index, "copies"); s != "" {
		copies, _ = strconv.Atoi(s)
	}

	loanable := true
	if s := pick(record, index, "loanable"); s != "" {
		loanable, _ = strconv.ParseBool(s)
	}

	resourceType := pick(record, index, "type")
	if resourceType == "" {
		resourceType = string(domain.ResourceBook)
	}

	return &csvRow{
		ISBN:         isbn,
		Title:        pick(record, index, "title"),
		Author:       pick(record, index, "author"),
		SubjectArea:  pick(record, index, "area"),
		Description:  pick(record, index, "description"),
		ResourceType: strings.ToUpper(resourceType),
		IsLoanable:   loanable,
		Copies:       copies,
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

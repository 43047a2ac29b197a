package exporters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type CatalogueExporter interface {
	Export(books []entities.Book) (ExportResult, error)
}

// BookLister supplies the books to export.
type BookLister interface {
	List() ([]entities.Book, error)
}

type ExportResult struct {
	Format         Format `json:"format"`
	Path           string `json:"path"`
	FileName       string `json:"file_name"`
	BooksProcessed int    `json:"books_processed"`
}

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "json", "markdown" and "md".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension is the file extension snapshots of this format get.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return "json"
}

// ExportCatalogue reads every book from lister and hands them to exporter.
func ExportCatalogue(lister BookLister, exporter CatalogueExporter) (ExportResult, error) {
	books, err := lister.List()
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to read catalogue: %w", err)
	}
	return exporter.Export(books)
}

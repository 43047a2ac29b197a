package exporters

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// SnapshotExporter writes the whole catalogue into a single file named
// bookshelf-<uuid>.<ext> inside Dir.
type SnapshotExporter struct {
	Dir    string
	Format Format
	now    func() time.Time
}

func NewSnapshotExporter(dir string, format Format) *SnapshotExporter {
	return &SnapshotExporter{
		Dir:    dir,
		Format: format,
		now:    time.Now,
	}
}

type jsonSnapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	Count      int             `json:"count"`
	Books      []entities.Book `json:"books"`
}

func (e *SnapshotExporter) Export(books []entities.Book) (ExportResult, error) {
	result := ExportResult{Format: e.Format}

	if err := e.ensureDir(); err != nil {
		return result, fmt.Errorf("failed to ensure export directory: %w", err)
	}

	sorted := catalogue.Apply(books, catalogue.Query{Sort: catalogue.DefaultSortOrder})

	var content []byte
	switch e.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(jsonSnapshot{
			ExportedAt: e.now().UTC(),
			Count:      len(sorted),
			Books:      sorted,
		}, "", "  ")
		if err != nil {
			return result, fmt.Errorf("failed to marshal catalogue to JSON: %w", err)
		}
		content = data
	case FormatMarkdown:
		content = []byte(GenerateMarkdown(sorted, e.now()))
	default:
		return result, fmt.Errorf("%w: %q", ErrUnknownFormat, e.Format)
	}

	result.FileName = fmt.Sprintf("bookshelf-%s.%s", uuid.New().String(), e.Format.Extension())
	result.Path = filepath.Join(e.Dir, result.FileName)

	log.Printf("Saving catalogue snapshot: %s", result.Path)

	if err := os.WriteFile(result.Path, content, 0644); err != nil {
		return result, fmt.Errorf("failed to write snapshot: %w", err)
	}

	result.BooksProcessed = len(sorted)
	return result, nil
}

func (e *SnapshotExporter) ensureDir() error {
	if _, err := os.Stat(e.Dir); os.IsNotExist(err) {
		if err := os.MkdirAll(e.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	return nil
}

// GenerateMarkdown renders books as a markdown document with frontmatter and
// one table row per book.
func GenerateMarkdown(books []entities.Book, exportedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString("content_type: book_catalogue\n")
	fmt.Fprintf(&sb, "exported_at: %s\n", exportedAt.Format(entities.DateLayout))
	fmt.Fprintf(&sb, "books: %d\n", len(books))
	sb.WriteString("---\n\n")
	sb.WriteString("# Bookshelf\n\n")

	if len(books) == 0 {
		sb.WriteString("No Book yet.\n")
		return sb.String()
	}

	sb.WriteString("| Name | Author | Genre | Published |\n")
	sb.WriteString("|------|--------|-------|-----------|\n")
	for _, b := range books {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			escapeCell(b.Name), escapeCell(b.Author), b.Genre, b.PublicationDateString())
	}

	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

var _ CatalogueExporter = (*SnapshotExporter)(nil)

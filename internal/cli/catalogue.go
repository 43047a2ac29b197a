package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
	"github.com/mrlokans/bookshelf/internal/views"
)

// session is an open catalogue for the duration of one command.
type session struct {
	db        *database.Database
	audit     *audit.Service
	catalogue *services.CatalogueService
}

// openCatalogue opens the database at path. Commands run without a change
// notifier: a running server picks the change up on its next query.
func openCatalogue(path string) (*session, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	auditService := audit.NewService(db.Audit())
	return &session{
		db:        db,
		audit:     auditService,
		catalogue: services.NewCatalogueService(db.Books(), nil, auditService),
	}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(entities.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use the format YYYY-MM-DD", s)
	}
	return t, nil
}

func parseGenre(s string) (entities.Genre, error) {
	g, err := entities.ParseGenre(s)
	if err != nil {
		return "", fmt.Errorf("%w (choose from %s)", err, genreChoices())
	}
	return g, nil
}

func genreChoices() string {
	genres := entities.AllGenres()
	labels := make([]string, len(genres))
	for i, g := range genres {
		labels[i] = fmt.Sprintf("%q", g.String())
	}
	return strings.Join(labels, ", ")
}

// describeError prints field messages for validation failures and returns
// the error unchanged so the command exits non-zero.
func describeError(out io.Writer, err error) error {
	fields := views.FieldErrors(err)
	if fields == nil {
		return err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(out, "The book was not saved:")
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %s\n", k, fields[k])
	}
	return err
}

func printBook(out io.Writer, book *entities.Book) {
	for _, f := range (&views.DetailView{Book: *book}).Fields() {
		fmt.Fprintf(out, "%-17s %s\n", f.Label+":", f.Value)
	}
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

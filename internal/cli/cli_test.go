package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

// run parses args into cmd, runs it against dbPath and returns its output.
func run(t *testing.T, cmd command, out *bytes.Buffer, dbPath string, args ...string) error {
	t.Helper()
	out.Reset()
	if err := cmd.ParseFlags(append([]string{"-db", dbPath}, args...)); err != nil {
		return err
	}
	return cmd.Run()
}

func addBook(t *testing.T, dbPath string, args ...string) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewAddCommand()
	cmd.Out = &out
	require.NoError(t, run(t, cmd, &out, dbPath, args...))
}

func listBooks(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewListCommand()
	cmd.Out = &out
	require.NoError(t, run(t, cmd, &out, dbPath, args...))
	return out.String()
}

func TestAddAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	assert.Contains(t, listBooks(t, dbPath), "No Book yet.")

	addBook(t, dbPath, "-name", "Dune", "-author", "Herbert", "-date", "1965-08-01", "-genre", "scifi")
	addBook(t, dbPath, "-name", "Hobbit", "-author", "Tolkien", "-date", "1937-09-21", "-genre", "fantasy")

	out := listBooks(t, dbPath)
	assert.Less(t, strings.Index(out, "Dune"), strings.Index(out, "Hobbit"))

	out = listBooks(t, dbPath, "-sort", "author_desc")
	assert.Less(t, strings.Index(out, "Hobbit"), strings.Index(out, "Dune"))

	out = listBooks(t, dbPath, "-sort", "author_desc", "-reverse")
	assert.Less(t, strings.Index(out, "Dune"), strings.Index(out, "Hobbit"))

	out = listBooks(t, dbPath, "-reverse")
	assert.Less(t, strings.Index(out, "Hobbit"), strings.Index(out, "Dune"))

	out = listBooks(t, dbPath, "-q", "herb")
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Hobbit")
}

func TestAddCommand_Errors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	var out bytes.Buffer

	t.Run("missing fields", func(t *testing.T) {
		cmd := NewAddCommand()
		cmd.Out = &out
		err := run(t, cmd, &out, dbPath, "-name", "  ")
		require.ErrorIs(t, err, services.ErrValidation)
		assert.Contains(t, out.String(), "author: This field is required")
		assert.Contains(t, out.String(), "name: This field is required")
	})

	t.Run("bad date", func(t *testing.T) {
		cmd := NewAddCommand()
		cmd.Out = &out
		err := run(t, cmd, &out, dbPath, "-name", "Dune", "-author", "Herbert", "-date", "1965/08/01")
		assert.ErrorContains(t, err, "YYYY-MM-DD")
	})

	t.Run("bad genre", func(t *testing.T) {
		cmd := NewAddCommand()
		cmd.Out = &out
		err := run(t, cmd, &out, dbPath, "-name", "Dune", "-author", "Herbert", "-genre", "horror")
		assert.ErrorIs(t, err, entities.ErrUnknownGenre)
	})

	assert.Contains(t, listBooks(t, dbPath), "No Book yet.")
}

func TestEditShowDelete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	addBook(t, dbPath, "-name", "Dune", "-author", "Herbert", "-date", "1965-08-01")

	var out bytes.Buffer

	edit := NewEditCommand()
	edit.Out = &out
	require.NoError(t, run(t, edit, &out, dbPath, "-id", "1", "-author", "Frank Herbert"))
	assert.Contains(t, out.String(), "Updated book 1")

	show := NewShowCommand()
	show.Out = &out
	require.NoError(t, run(t, show, &out, dbPath, "-id", "1"))
	assert.Contains(t, out.String(), "Dune")
	assert.Contains(t, out.String(), "Frank Herbert")
	assert.Contains(t, out.String(), "1965-08-01")
	assert.Contains(t, out.String(), "Science Fiction")

	require.ErrorIs(t, run(t, NewShowCommand(), &out, dbPath, "-id", "7"), services.ErrNotFound)
	require.Error(t, run(t, NewEditCommand(), &out, dbPath))

	del := NewDeleteCommand()
	del.Out = &out
	require.NoError(t, run(t, del, &out, dbPath, "-id", "1"))
	assert.Contains(t, out.String(), "Deleted book 1: Dune by Frank Herbert")

	require.ErrorIs(t, run(t, NewDeleteCommand(), &out, dbPath, "-id", "1"), services.ErrNotFound)
	assert.Contains(t, listBooks(t, dbPath), "No Book yet.")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cli.db")
	exportDir := filepath.Join(dir, "exports")
	addBook(t, dbPath, "-name", "Dune", "-author", "Herbert", "-date", "1965-08-01")

	var out bytes.Buffer
	cmd := NewExportCommand()
	cmd.Out = &out
	require.NoError(t, run(t, cmd, &out, dbPath, "-format", "markdown", "-output", exportDir))
	assert.Contains(t, out.String(), "Exported 1 books")

	entries, err := os.ReadDir(exportDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".md"))

	content, err := os.ReadFile(filepath.Join(exportDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "| Dune | Herbert | Science Fiction | 1965-08-01 |")

	assert.Error(t, NewExportCommand().ParseFlags([]string{"-format", "csv"}))
}

func TestListCommand_BadSort(t *testing.T) {
	assert.Error(t, NewListCommand().ParseFlags([]string{"-sort", "year"}))
}

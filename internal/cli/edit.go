package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/views"
)

// EditCommand changes the editable fields of one book. Only the flags that
// are given are changed.
type EditCommand struct {
	ID           uint
	Name         string
	Author       string
	Date         string
	Genre        string
	DatabasePath string

	set map[string]bool
	Out io.Writer
}

func NewEditCommand() *EditCommand {
	return &EditCommand{}
}

func (cmd *EditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)

	fs.UintVar(&cmd.ID, "id", 0, "ID of the book to edit (required)")
	fs.StringVar(&cmd.Name, "name", "", "New book name")
	fs.StringVar(&cmd.Author, "author", "", "New author name")
	fs.StringVar(&cmd.Date, "date", "", "New publication date as YYYY-MM-DD")
	fs.StringVar(&cmd.Genre, "genre", "", "New genre: "+genreChoices())
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalogue database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s edit -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Edit a book. Fields without a flag keep their value.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ID == 0 {
		return errors.New("required flag -id not provided")
	}

	cmd.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { cmd.set[f.Name] = true })
	return nil
}

func (cmd *EditCommand) Run() error {
	out := stdout(cmd.Out)

	s, err := openCatalogue(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	detail, err := views.NewDetailView(s.catalogue, cmd.ID)
	if err != nil {
		return fmt.Errorf("book %d: %w", cmd.ID, err)
	}

	form := detail.EditForm()
	if cmd.set["name"] {
		form.Input.Name = cmd.Name
	}
	if cmd.set["author"] {
		form.Input.Author = cmd.Author
	}
	if cmd.set["date"] {
		if form.Input.PublicationDate, err = parseDate(cmd.Date); err != nil {
			return err
		}
	}
	if cmd.set["genre"] {
		if form.Input.Genre, err = parseGenre(cmd.Genre); err != nil {
			return err
		}
	}

	book, err := form.Submit()
	if err != nil {
		return describeError(out, err)
	}

	fmt.Fprintf(out, "Updated book %d\n", book.ID)
	printBook(out, book)
	return nil
}

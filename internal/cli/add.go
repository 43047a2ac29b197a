package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/views"
)

// AddCommand adds a book to the catalogue.
type AddCommand struct {
	Name         string
	Author       string
	Date         string
	Genre        string
	DatabasePath string

	Out io.Writer
}

func NewAddCommand() *AddCommand {
	return &AddCommand{}
}

func (cmd *AddCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)

	fs.StringVar(&cmd.Name, "name", "", "Book name (required)")
	fs.StringVar(&cmd.Author, "author", "", "Author name (required)")
	fs.StringVar(&cmd.Date, "date", "", "Publication date as YYYY-MM-DD (default: today)")
	fs.StringVar(&cmd.Genre, "genre", entities.DefaultGenre.String(), "Genre: "+genreChoices())
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalogue database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s add -name <name> -author <author> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Add a book to the catalogue.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s add -name Dune -author \"Frank Herbert\" -date 1965-08-01 -genre scifi\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *AddCommand) Run() error {
	out := stdout(cmd.Out)

	s, err := openCatalogue(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	form := views.NewAddForm(s.catalogue)
	form.Input.Name = cmd.Name
	form.Input.Author = cmd.Author
	if cmd.Date != "" {
		if form.Input.PublicationDate, err = parseDate(cmd.Date); err != nil {
			return err
		}
	}
	if form.Input.Genre, err = parseGenre(cmd.Genre); err != nil {
		return err
	}

	book, err := form.Submit()
	if err != nil {
		return describeError(out, err)
	}

	fmt.Fprintf(out, "Added book %d\n", book.ID)
	printBook(out, book)
	return nil
}

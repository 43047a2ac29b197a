package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
)

// DeleteCommand removes one book.
type DeleteCommand struct {
	ID           uint
	DatabasePath string

	Out io.Writer
}

func NewDeleteCommand() *DeleteCommand {
	return &DeleteCommand{}
}

func (cmd *DeleteCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)

	fs.UintVar(&cmd.ID, "id", 0, "ID of the book to delete (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalogue database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s delete -id <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete a book from the catalogue.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.ID == 0 {
		return errors.New("required flag -id not provided")
	}
	return nil
}

func (cmd *DeleteCommand) Run() error {
	s, err := openCatalogue(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	book, err := s.catalogue.Delete(cmd.ID)
	if err != nil {
		return fmt.Errorf("book %d: %w", cmd.ID, err)
	}

	fmt.Fprintf(stdout(cmd.Out), "Deleted book %d: %s by %s\n", book.ID, book.Name, book.Author)
	return nil
}

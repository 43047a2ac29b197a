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

// ShowCommand prints the detail of one book.
type ShowCommand struct {
	ID           uint
	DatabasePath string

	Out io.Writer
}

func NewShowCommand() *ShowCommand {
	return &ShowCommand{}
}

func (cmd *ShowCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)

	fs.UintVar(&cmd.ID, "id", 0, "ID of the book (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalogue database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s show -id <id> [options]\n\n", os.Args[0])
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

func (cmd *ShowCommand) Run() error {
	s, err := openCatalogue(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	detail, err := views.NewDetailView(s.catalogue, cmd.ID)
	if err != nil {
		return fmt.Errorf("book %d: %w", cmd.ID, err)
	}

	printBook(stdout(cmd.Out), &detail.Book)
	return nil
}

package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/views"
)

// ListCommand prints the catalogue, optionally searched and sorted.
type ListCommand struct {
	Search       string
	Sort         string
	Reverse      bool
	DatabasePath string

	Out io.Writer
}

func NewListCommand() *ListCommand {
	return &ListCommand{}
}

func (cmd *ListCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	fs.StringVar(&cmd.Search, "q", "", "Show only books whose name or author contains this text")
	fs.StringVar(&cmd.Sort, "sort", catalogue.DefaultSortOrder.Key(), "Sort order: name_asc, name_desc, author_asc or author_desc")
	fs.BoolVar(&cmd.Reverse, "reverse", false, "Flip the direction of the sort order")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalogue database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s list [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s list -q herbert -sort author_desc\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := catalogue.ParseSortOrder(cmd.Sort); err != nil {
		return err
	}
	return nil
}

func (cmd *ListCommand) Run() error {
	out := stdout(cmd.Out)

	q, err := catalogue.NewQuery(cmd.Search, cmd.Sort)
	if err != nil {
		return err
	}
	if cmd.Reverse {
		q.Sort = q.Sort.Reverse()
	}

	s, err := openCatalogue(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := views.NewListView(s.catalogue, q).Refresh()
	if err != nil {
		return err
	}

	if snap.Empty() {
		fmt.Fprintln(out, views.EmptyTitle)
		fmt.Fprintln(out, views.EmptyMessage)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAUTHOR")
	for _, row := range snap.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", row.ID, row.Name, row.Author)
	}
	return tw.Flush()
}

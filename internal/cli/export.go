package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportCommand writes a snapshot of the catalogue to a file.
type ExportCommand struct {
	Format       string
	OutputDir    string
	DatabasePath string

	format exporters.Format
	Out    io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)

	fs.StringVar(&cmd.Format, "format", string(exporters.FormatJSON), "Snapshot format: json or markdown")
	fs.StringVar(&cmd.OutputDir, "output", config.DefaultExportDir, "Directory to write the snapshot to")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the catalogue database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Write every book to bookshelf-<id>.json or .md in the output directory.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := exporters.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	cmd.format = format
	return nil
}

func (cmd *ExportCommand) Run() error {
	if cmd.format == "" {
		format, err := exporters.ParseFormat(cmd.Format)
		if err != nil {
			return err
		}
		cmd.format = format
	}

	s, err := openCatalogue(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := exporters.ExportCatalogue(s.catalogue, exporters.NewSnapshotExporter(cmd.OutputDir, cmd.format))
	if err != nil {
		s.audit.LogExport(string(cmd.format), "Catalogue export failed", 0, err)
		return err
	}
	s.audit.LogExport(string(cmd.format),
		fmt.Sprintf("Exported %d books to %s", result.BooksProcessed, result.FileName),
		result.BooksProcessed, nil)

	fmt.Fprintf(stdout(cmd.Out), "Exported %d books to %s\n", result.BooksProcessed, result.Path)
	return nil
}

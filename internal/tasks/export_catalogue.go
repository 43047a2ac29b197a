package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/exporters"
)

// ExportRecorder records the outcome of an export in the audit trail.
type ExportRecorder interface {
	LogExport(format, description string, booksCount int, err error)
}

// ExportCatalogueTask writes a snapshot of the catalogue to the export directory.
type ExportCatalogueTask struct {
	Format string `json:"format"`
	Reason string `json:"reason,omitempty"` // "manual", "scheduled"
}

func (t ExportCatalogueTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "export_catalogue",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportCatalogueProcessor reads the catalogue through lister and writes it to exportDir.
// recorder may be nil.
func ExportCatalogueProcessor(lister exporters.BookLister, exportDir string, recorder ExportRecorder) backlite.QueueProcessor[ExportCatalogueTask] {
	return func(ctx context.Context, task ExportCatalogueTask) error {
		if lister == nil {
			return fmt.Errorf("catalogue reader not configured")
		}

		format, err := exporters.ParseFormat(task.Format)
		if err != nil {
			// Retrying will not fix a bad format.
			log.Printf("[TASK ERROR] Skipping export: %v", err)
			return nil
		}

		result, err := exporters.ExportCatalogue(lister, exporters.NewSnapshotExporter(exportDir, format))
		if recorder != nil {
			desc := fmt.Sprintf("Exported %d books to %s", result.BooksProcessed, result.FileName)
			if err != nil {
				desc = "Catalogue export failed"
			}
			recorder.LogExport(string(format), desc, result.BooksProcessed, err)
		}
		if err != nil {
			return fmt.Errorf("export catalogue: %w", err)
		}

		log.Printf("[TASK] Exported %d books to %s (%s)", result.BooksProcessed, result.Path, task.Reason)
		return nil
	}
}

// NewExportCatalogueQueue creates a backlite queue for catalogue exports.
func NewExportCatalogueQueue(lister exporters.BookLister, exportDir string, recorder ExportRecorder) backlite.Queue {
	return backlite.NewQueue(ExportCatalogueProcessor(lister, exportDir, recorder))
}

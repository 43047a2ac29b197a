package tasks

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
)

type stubLister struct {
	books []entities.Book
	err   error
}

func (s stubLister) List() ([]entities.Book, error) { return s.books, s.err }

type exportLog struct {
	format string
	count  int
	err    error
}

type stubRecorder struct {
	entries []exportLog
}

func (r *stubRecorder) LogExport(format, description string, booksCount int, err error) {
	r.entries = append(r.entries, exportLog{format: format, count: booksCount, err: err})
}

type stubCleaner struct {
	retention time.Duration
	err       error
}

func (c *stubCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	c.retention = retention
	return 4, c.err
}

func TestExportCatalogueProcessor(t *testing.T) {
	books := []entities.Book{
		{ID: 1, Name: "Dune", Author: "Herbert", Genre: entities.GenreScienceFiction},
	}

	t.Run("writes a snapshot and records it", func(t *testing.T) {
		dir := t.TempDir()
		recorder := &stubRecorder{}
		process := ExportCatalogueProcessor(stubLister{books: books}, dir, recorder)

		require.NoError(t, process(context.Background(), ExportCatalogueTask{Format: "json", Reason: "manual"}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)

		require.Len(t, recorder.entries, 1)
		assert.Equal(t, "json", recorder.entries[0].format)
		assert.Equal(t, 1, recorder.entries[0].count)
		assert.NoError(t, recorder.entries[0].err)
	})

	t.Run("unknown format is dropped without retry", func(t *testing.T) {
		dir := t.TempDir()
		process := ExportCatalogueProcessor(stubLister{books: books}, dir, nil)

		require.NoError(t, process(context.Background(), ExportCatalogueTask{Format: "pdf"}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("read failure is returned and recorded", func(t *testing.T) {
		recorder := &stubRecorder{}
		process := ExportCatalogueProcessor(stubLister{err: errors.New("db closed")}, t.TempDir(), recorder)

		err := process(context.Background(), ExportCatalogueTask{Format: "markdown"})
		assert.ErrorContains(t, err, "db closed")
		require.Len(t, recorder.entries, 1)
		assert.Error(t, recorder.entries[0].err)
	})

	t.Run("missing lister", func(t *testing.T) {
		process := ExportCatalogueProcessor(nil, t.TempDir(), nil)
		assert.Error(t, process(context.Background(), ExportCatalogueTask{}))
	})
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	cleaner := &stubCleaner{}
	process := CleanupAuditEventsProcessor(cleaner)

	require.NoError(t, process(context.Background(), CleanupAuditEventsTask{RetentionDays: 7}))
	assert.Equal(t, 7*24*time.Hour, cleaner.retention)

	require.NoError(t, process(context.Background(), CleanupAuditEventsTask{}))
	assert.Equal(t, DefaultAuditRetentionDays*24*time.Hour, cleaner.retention)

	cleaner.err = errors.New("locked")
	assert.Error(t, process(context.Background(), CleanupAuditEventsTask{}))

	assert.Error(t, CleanupAuditEventsProcessor(nil)(context.Background(), CleanupAuditEventsTask{}))
}

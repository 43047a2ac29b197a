package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogBookChange records the outcome of a create, update or delete of book.
// Failures to write the trail are logged and otherwise ignored.
func (s *Service) LogBookChange(eventType entities.AuditEventType, book *entities.Book, err error) {
	event := &entities.AuditEvent{
		EventType:   eventType,
		Action:      "book_" + string(eventType),
		Description: describeBookChange(eventType, book),
		EntityType:  "book",
		Status:      entities.AuditStatusSuccess,
	}
	if book.ID != 0 {
		id := book.ID
		event.EntityID = &id
	}

	metadata := map[string]any{
		"name":   book.Name,
		"author": book.Author,
		"genre":  book.Genre,
	}
	if mdBytes, e := json.Marshal(metadata); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	if e := s.repo.LogEvent(event); e != nil {
		log.Printf("Failed to log audit event: %v", e)
	}
}

// LogExport records a catalogue export.
func (s *Service) LogExport(format, description string, booksCount int, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventExport,
		Action:      format + "_export",
		Description: truncate(description, 500),
		EntityType:  "catalogue",
		Status:      entities.AuditStatusSuccess,
	}

	if mdBytes, e := json.Marshal(map[string]any{"books_count": booksCount}); e == nil {
		event.Metadata = string(mdBytes)
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	if e := s.repo.LogEvent(event); e != nil {
		log.Printf("Failed to log audit event: %v", e)
	}
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// GetEventsByType retrieves paginated audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEventsByType(eventType, limit, offset)
}

// GetBookHistory returns every event recorded against a book, newest first.
func (s *Service) GetBookHistory(bookID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForBook(bookID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func describeBookChange(eventType entities.AuditEventType, book *entities.Book) string {
	var verb string
	switch eventType {
	case entities.AuditEventCreate:
		verb = "Added"
	case entities.AuditEventUpdate:
		verb = "Edited"
	case entities.AuditEventDelete:
		verb = "Deleted"
	default:
		verb = string(eventType)
	}
	return truncate(fmt.Sprintf("%s book: %s by %s", verb, book.Name, book.Author), 500)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

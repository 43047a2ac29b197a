package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/events"
)

// CatalogueService is the single entry point for reading and mutating the
// catalogue. Each mutation validates its input, persists explicitly, and
// only then notifies subscribers, so observers never see a change the store
// did not commit.
type CatalogueService struct {
	store     BookStore
	publisher ChangePublisher
	auditor   AuditLogger
	now       func() time.Time
}

// NewCatalogueService creates a service over store. publisher and auditor
// may be nil.
func NewCatalogueService(store BookStore, publisher ChangePublisher, auditor AuditLogger) *CatalogueService {
	return &CatalogueService{
		store:     store,
		publisher: publisher,
		auditor:   auditor,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create validates input and inserts a new book stamped with the current time.
func (s *CatalogueService) Create(input BookInput) (*entities.Book, error) {
	input, err := input.Validate()
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		Name:            input.Name,
		Author:          input.Author,
		PublicationDate: input.PublicationDate,
		Genre:           input.Genre,
		CreatedAt:       s.now(),
	}

	if err := s.store.CreateBook(book); err != nil {
		s.audit(entities.AuditEventCreate, book, err)
		return nil, &StorageError{Op: "create", Err: err}
	}

	s.audit(entities.AuditEventCreate, book, nil)
	s.publish(events.ChangeCreated, book.ID)
	return book, nil
}

// Update overwrites the editable fields of book id. ID and CreatedAt are kept.
func (s *CatalogueService) Update(id uint, input BookInput) (*entities.Book, error) {
	input, err := input.Validate()
	if err != nil {
		return nil, err
	}

	book, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	book.Name = input.Name
	book.Author = input.Author
	book.PublicationDate = input.PublicationDate
	book.Genre = input.Genre

	if err := s.store.UpdateBook(book); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		s.audit(entities.AuditEventUpdate, book, err)
		return nil, &StorageError{Op: "update", Err: err}
	}

	s.audit(entities.AuditEventUpdate, book, nil)
	s.publish(events.ChangeUpdated, book.ID)
	return book, nil
}

// Delete removes book id and returns the removed record.
func (s *CatalogueService) Delete(id uint) (*entities.Book, error) {
	book, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteBook(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		s.audit(entities.AuditEventDelete, book, err)
		return nil, &StorageError{Op: "delete", Err: err}
	}

	s.audit(entities.AuditEventDelete, book, nil)
	s.publish(events.ChangeDeleted, id)
	return book, nil
}

// Get returns book id.
func (s *CatalogueService) Get(id uint) (*entities.Book, error) {
	book, err := s.store.GetBookByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, &StorageError{Op: "get", Err: err}
	}
	return book, nil
}

// List returns every book in insertion order.
func (s *CatalogueService) List() ([]entities.Book, error) {
	books, err := s.store.GetAllBooks()
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return books, nil
}

// Query returns the books matching q.Search ordered by q.Sort.
func (s *CatalogueService) Query(q catalogue.Query) ([]entities.Book, error) {
	books, err := s.List()
	if err != nil {
		return nil, err
	}
	return catalogue.Apply(books, q), nil
}

func (s *CatalogueService) publish(kind events.ChangeKind, id uint) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(events.Change{Kind: kind, BookID: id, At: s.now()}); err != nil {
		log.Printf("Failed to publish %s of book %d: %v", kind, id, err)
	}
}

func (s *CatalogueService) audit(eventType entities.AuditEventType, book *entities.Book, err error) {
	if s.auditor == nil {
		return
	}
	s.auditor.LogBookChange(eventType, book, err)
}

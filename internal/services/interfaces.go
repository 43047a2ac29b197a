package services

import (
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/events"
)

// BookStore is the persistence contract the catalogue service relies on.
// Every mutation is durable when the call returns. Missing rows are reported
// as gorm.ErrRecordNotFound.
type BookStore interface {
	CreateBook(book *entities.Book) error
	UpdateBook(book *entities.Book) error
	DeleteBook(id uint) error
	GetBookByID(id uint) (*entities.Book, error)
	GetAllBooks() ([]entities.Book, error)
}

// ChangePublisher receives a notification after each committed mutation.
type ChangePublisher interface {
	Publish(change events.Change) error
}

// AuditLogger records the outcome of catalogue mutations.
type AuditLogger interface {
	LogBookChange(eventType entities.AuditEventType, book *entities.Book, err error)
}

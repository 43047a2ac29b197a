package views

import (
	"errors"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

// ErrFormClosed is returned when a submitted or cancelled form is used again.
var ErrFormClosed = errors.New("form is closed")

type formState int

const (
	formOpen formState = iota
	formSubmitted
	formCancelled
)

// form is the open/submitted/cancelled lifecycle shared by the add and edit
// forms. A form belongs to the request or command that opened it and is not
// safe for concurrent use.
type form struct {
	cat   Catalogue
	state formState

	// Input holds the field values. Callers edit it directly before Submit.
	Input services.BookInput
}

func (f *form) submit(write func(services.BookInput) (*entities.Book, error)) (*entities.Book, error) {
	if f.state != formOpen {
		return nil, ErrFormClosed
	}

	book, err := write(f.Input)
	if err != nil {
		// The form stays open so the input can be corrected.
		return nil, err
	}
	f.state = formSubmitted
	return book, nil
}

// Cancel discards the input. It never touches the catalogue.
func (f *form) Cancel() {
	if f.state == formOpen {
		f.state = formCancelled
		f.Input = services.BookInput{}
	}
}

// AddForm collects a new book.
type AddForm struct {
	form
}

// NewAddForm opens an add form dated today with the default genre.
func NewAddForm(cat Catalogue) *AddForm {
	return &AddForm{form: form{
		cat: cat,
		Input: services.BookInput{
			PublicationDate: entities.DateOnly(time.Now()),
			Genre:           entities.DefaultGenre,
		},
	}}
}

// Submit validates and inserts the book. Validation and storage errors
// leave the form open.
func (f *AddForm) Submit() (*entities.Book, error) {
	return f.submit(f.cat.Create)
}

// EditForm edits an existing book.
type EditForm struct {
	form
	bookID uint
}

// NewEditForm opens a form pre-populated from book.
func NewEditForm(cat Catalogue, book *entities.Book) *EditForm {
	return &EditForm{
		form:   form{cat: cat, Input: services.InputFromBook(book)},
		bookID: book.ID,
	}
}

// BookID is the book being edited.
func (f *EditForm) BookID() uint {
	return f.bookID
}

// Submit persists the edited fields.
func (f *EditForm) Submit() (*entities.Book, error) {
	return f.submit(func(in services.BookInput) (*entities.Book, error) {
		return f.cat.Update(f.bookID, in)
	})
}

// FieldErrors extracts per-field messages from a validation error, or nil.
func FieldErrors(err error) map[string]string {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

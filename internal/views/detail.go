package views

import (
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Field is one labelled value on the detail screen.
type Field struct {
	Label string
	Value string
}

// DetailView is a read-only projection of one book.
type DetailView struct {
	cat  Catalogue
	Book entities.Book
}

// NewDetailView loads book id.
func NewDetailView(cat Catalogue, id uint) (*DetailView, error) {
	book, err := cat.Get(id)
	if err != nil {
		return nil, err
	}
	return &DetailView{cat: cat, Book: *book}, nil
}

func (d *DetailView) Fields() []Field {
	return []Field{
		{Label: "Name", Value: d.Book.Name},
		{Label: "Author", Value: d.Book.Author},
		{Label: "Genre", Value: d.Book.Genre.String()},
		{Label: "Publication Date", Value: d.Book.PublicationDateString()},
		{Label: "Added", Value: d.Book.CreatedAt.Local().Format(time.DateTime)},
	}
}

// EditForm opens an edit form for the same book.
func (d *DetailView) EditForm() *EditForm {
	book := d.Book
	return NewEditForm(d.cat, &book)
}

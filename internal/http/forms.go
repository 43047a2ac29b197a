package http

import (
	"errors"
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

// BookRequest is the body of POST /api/books and PUT /api/books/:id and the
// shape of the HTML add/edit forms.
type BookRequest struct {
	Name            string `json:"name" form:"name"`
	Author          string `json:"author" form:"author"`
	PublicationDate string `json:"publication_date" form:"publication_date"` // 2006-01-02
	Genre           string `json:"genre" form:"genre"`
}

// toInput converts the request into service input. Fields that cannot be
// parsed are reported alongside, keyed like the validator's field names.
func (r BookRequest) toInput() (services.BookInput, map[string]string) {
	fields := make(map[string]string)
	input := services.BookInput{
		Name:   r.Name,
		Author: r.Author,
	}

	if date := strings.TrimSpace(r.PublicationDate); date == "" {
		fields["publication_date"] = "This field is required"
	} else if t, err := parseDate(date); err != nil {
		fields["publication_date"] = "Use the format YYYY-MM-DD"
	} else {
		input.PublicationDate = t
	}

	if genre := strings.TrimSpace(r.Genre); genre != "" {
		g, err := entities.ParseGenre(genre)
		if err != nil {
			// Left for the validator to report with the list of genres.
			input.Genre = entities.Genre(genre)
		} else {
			input.Genre = g
		}
	}

	return input, fields
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(entities.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// submitErrors merges parse errors with the validation errors of input.
// It returns nil when input can be submitted.
func submitErrors(input services.BookInput, parseErrors map[string]string) map[string]string {
	if len(parseErrors) == 0 {
		return nil
	}
	merged := make(map[string]string, len(parseErrors))
	if _, err := input.Validate(); err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			for k, v := range ve.Fields {
				merged[k] = v
			}
		}
	}
	for k, v := range parseErrors {
		merged[k] = v
	}
	return merged
}

// BookResponse is the JSON representation of a book.
type BookResponse struct {
	ID              uint           `json:"id"`
	Name            string         `json:"name"`
	Author          string         `json:"author"`
	PublicationDate string         `json:"publication_date"`
	Genre           entities.Genre `json:"genre"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func toBookResponse(b *entities.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Name:            b.Name,
		Author:          b.Author,
		PublicationDate: b.PublicationDateString(),
		Genre:           b.Genre,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBookResponses(books []entities.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = toBookResponse(&books[i])
	}
	return out
}

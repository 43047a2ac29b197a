package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// BookInput carries the editable fields of a book from a form, request or
// command line. Every PublicationDate is a valid date; the zero value is
// 0001-01-01. Callers that read dates from text report a missing one
// themselves.
type BookInput struct {
	Name            string         `json:"name" validate:"required,max=512"`
	Author          string         `json:"author" validate:"required,max=256"`
	PublicationDate time.Time      `json:"publication_date"`
	Genre           entities.Genre `json:"genre" validate:"required,genre"`
}

// InputFromBook copies the editable fields of b.
func InputFromBook(b *entities.Book) BookInput {
	return BookInput{
		Name:            b.Name,
		Author:          b.Author,
		PublicationDate: b.PublicationDate,
		Genre:           b.Genre,
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		g, ok := fl.Field().Interface().(entities.Genre)
		return ok && g.Valid()
	})
}

// Normalize trims text fields and reduces the publication date to a calendar date.
func (in BookInput) Normalize() BookInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Author = strings.TrimSpace(in.Author)
	in.PublicationDate = entities.DateOnly(in.PublicationDate)
	return in
}

// Validate normalizes the input and checks it. The returned error, if any,
// is a *ValidationError.
func (in BookInput) Validate() (BookInput, error) {
	in = in.Normalize()
	if err := validate.Struct(in); err != nil {
		return in, &ValidationError{Fields: formatValidationErrors(err)}
	}
	return in, nil
}

func formatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs["_"] = err.Error()
		return errs
	}
	for _, e := range ve {
		errs[e.Field()] = formatFieldError(e)
	}
	return errs
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	case "genre":
		return fmt.Sprintf("Must be one of %s", genreList())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

func genreList() string {
	genres := entities.AllGenres()
	labels := make([]string, len(genres))
	for i, g := range genres {
		labels[i] = g.String()
	}
	return strings.Join(labels, ", ")
}

// Package views holds the screen models of the catalogue: the live
// list/search/sort view, the add and edit forms and the read-only detail
// view. They carry no rendering; the HTML handlers and the CLI drive them and
// render their state.
//
// Every view takes the catalogue it works on as a constructor argument.
package views

import (
	"context"

	"github.com/mrlokans/bookshelf/internal/catalogue"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/events"
	"github.com/mrlokans/bookshelf/internal/services"
)

// Catalogue is the subset of services.CatalogueService the views use.
type Catalogue interface {
	Create(input services.BookInput) (*entities.Book, error)
	Update(id uint, input services.BookInput) (*entities.Book, error)
	Delete(id uint) (*entities.Book, error)
	Get(id uint) (*entities.Book, error)
	Query(q catalogue.Query) ([]entities.Book, error)
}

// ChangeSource delivers committed catalogue changes.
type ChangeSource interface {
	Subscribe(ctx context.Context) (<-chan events.Change, error)
}

var _ Catalogue = (*services.CatalogueService)(nil)
var _ ChangeSource = (*events.Notifier)(nil)

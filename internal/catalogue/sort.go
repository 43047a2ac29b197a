package catalogue

import (
	"errors"
	"fmt"
	"strings"
)

// SortField is the book field a listing is ordered by.
type SortField string

const (
	SortByName   SortField = "name"
	SortByAuthor SortField = "author"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

var ErrUnknownSortOrder = errors.New("unknown sort order")

// SortOrder is a single-key sort descriptor.
type SortOrder struct {
	Field     SortField
	Direction SortDirection
}

var (
	SortNameAsc    = SortOrder{Field: SortByName, Direction: Ascending}
	SortNameDesc   = SortOrder{Field: SortByName, Direction: Descending}
	SortAuthorAsc  = SortOrder{Field: SortByAuthor, Direction: Ascending}
	SortAuthorDesc = SortOrder{Field: SortByAuthor, Direction: Descending}
)

// DefaultSortOrder is used when no order is selected.
var DefaultSortOrder = SortNameAsc

var sortOrders = []SortOrder{SortNameAsc, SortNameDesc, SortAuthorAsc, SortAuthorDesc}

// SortOrders returns the selectable orders in menu order.
func SortOrders() []SortOrder {
	out := make([]SortOrder, len(sortOrders))
	copy(out, sortOrders)
	return out
}

// Key is the stable identifier used in URLs, flags and sessions, e.g. "author_desc".
func (o SortOrder) Key() string {
	return string(o.Field) + "_" + string(o.Direction)
}

// Label is the menu text for the order.
func (o SortOrder) Label() string {
	subject := "Book Name"
	if o.Field == SortByAuthor {
		subject = "Author Name"
	}
	if o.Direction == Descending {
		return subject + " Z-A"
	}
	return subject + " A-Z"
}

func (o SortOrder) String() string {
	return o.Key()
}

// Valid reports whether o is one of the four selectable orders.
func (o SortOrder) Valid() bool {
	for _, known := range sortOrders {
		if o == known {
			return true
		}
	}
	return false
}

// Reverse returns the same field with the opposite direction.
func (o SortOrder) Reverse() SortOrder {
	if o.Direction == Descending {
		return SortOrder{Field: o.Field, Direction: Ascending}
	}
	return SortOrder{Field: o.Field, Direction: Descending}
}

// ParseSortOrder parses a key such as "name_asc". An empty string yields
// DefaultSortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return DefaultSortOrder, nil
	}
	for _, o := range sortOrders {
		if o.Key() == key {
			return o, nil
		}
	}
	return SortOrder{}, fmt.Errorf("%w: %q", ErrUnknownSortOrder, s)
}

// Package catalogue filters and orders book listings.
//
// Matching and ordering are locale aware: search ignores case and
// diacritics, and names are compared with a Unicode collator rather than
// byte order.
package catalogue

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// Query is the search text and sort selection of a listing.
type Query struct {
	Search string
	Sort   SortOrder
}

// NewQuery builds a Query from raw search text and a sort key.
func NewQuery(searchText, sortKey string) (Query, error) {
	order, err := ParseSortOrder(sortKey)
	if err != nil {
		return Query{}, err
	}
	return Query{Search: searchText, Sort: order}, nil
}

// Matcher reports whether a book matches search text. The zero value is not
// usable; create one with NewMatcher. A Matcher is not safe for concurrent use.
type Matcher struct {
	pattern string
	blank   bool
	m       *search.Matcher
}

// NewMatcher prepares a matcher for the given search text. Text that is
// only whitespace matches everything; otherwise it is matched as given,
// surrounding spaces included.
func NewMatcher(searchText string) *Matcher {
	return &Matcher{
		pattern: searchText,
		blank:   strings.TrimSpace(searchText) == "",
		m:       search.New(language.Und, search.IgnoreCase, search.IgnoreDiacritics),
	}
}

// Match is true when the search text is blank or is a substring of the
// book's name or author.
func (m *Matcher) Match(b entities.Book) bool {
	if m.blank {
		return true
	}
	return m.contains(b.Name) || m.contains(b.Author)
}

func (m *Matcher) contains(s string) bool {
	start, _ := m.m.IndexString(s, m.pattern)
	return start >= 0
}

// Filter returns the books matching searchText, preserving input order.
func Filter(books []entities.Book, searchText string) []entities.Book {
	m := NewMatcher(searchText)
	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if m.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// Sort orders books in place. Equal keys are ordered by ID ascending in both
// directions so the result is total and repeatable.
func Sort(books []entities.Book, order SortOrder) {
	if !order.Valid() {
		order = DefaultSortOrder
	}
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)

	key := func(b entities.Book) string {
		if order.Field == SortByAuthor {
			return b.Author
		}
		return b.Name
	}

	sort.SliceStable(books, func(i, j int) bool {
		cmp := c.CompareString(key(books[i]), key(books[j]))
		if cmp == 0 {
			cmp = strings.Compare(key(books[i]), key(books[j]))
		}
		if cmp == 0 {
			return books[i].ID < books[j].ID
		}
		if order.Direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

// Apply filters first and then sorts the filtered set. The input slice is
// not modified.
func Apply(books []entities.Book, q Query) []entities.Book {
	out := Filter(books, q.Search)
	Sort(out, q.Sort)
	return out
}

package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Genre is the closed set of labels a book can be filed under.
// It is stored and encoded as its display label.
type Genre string

const (
	GenreFantasy        Genre = "Fantasy"
	GenreScienceFiction Genre = "Science Fiction"
	GenreMystery        Genre = "Mystery"
)

// DefaultGenre is preselected on new books.
const DefaultGenre = GenreScienceFiction

var ErrUnknownGenre = errors.New("unknown genre")

var allGenres = []Genre{GenreFantasy, GenreScienceFiction, GenreMystery}

// AllGenres returns every genre in picker order.
func AllGenres() []Genre {
	out := make([]Genre, len(allGenres))
	copy(out, allGenres)
	return out
}

// Valid reports whether g is one of the known genres.
func (g Genre) Valid() bool {
	for _, known := range allGenres {
		if g == known {
			return true
		}
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}

// ParseGenre accepts a display label (any case) or one of the short
// identifiers fantasy, science_fiction, scifi, sci-fi and mystery.
func ParseGenre(s string) (Genre, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "fantasy":
		return GenreFantasy, nil
	case "science fiction", "science_fiction", "sciencefiction", "scifi", "sci-fi":
		return GenreScienceFiction, nil
	case "mystery":
		return GenreMystery, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGenre, s)
}

func (g Genre) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, string(g))
	}
	return json.Marshal(string(g))
}

func (g *Genre) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseGenre(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

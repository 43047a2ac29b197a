package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenre(t *testing.T) {
	tests := []struct {
		input string
		want  Genre
	}{
		{"Fantasy", GenreFantasy},
		{"fantasy", GenreFantasy},
		{"Science Fiction", GenreScienceFiction},
		{"science fiction", GenreScienceFiction},
		{"scifi", GenreScienceFiction},
		{"science_fiction", GenreScienceFiction},
		{"  MYSTERY ", GenreMystery},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGenre(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseGenre("Romance")
		assert.ErrorIs(t, err, ErrUnknownGenre)
	})
}

func TestAllGenres(t *testing.T) {
	genres := AllGenres()
	assert.Equal(t, []Genre{GenreFantasy, GenreScienceFiction, GenreMystery}, genres)

	genres[0] = "mutated"
	assert.Equal(t, GenreFantasy, AllGenres()[0])

	for _, g := range AllGenres() {
		assert.True(t, g.Valid())
	}
	assert.False(t, Genre("Horror").Valid())
}

func TestGenre_JSON(t *testing.T) {
	data, err := json.Marshal(GenreScienceFiction)
	require.NoError(t, err)
	assert.Equal(t, `"Science Fiction"`, string(data))

	var g Genre
	require.NoError(t, json.Unmarshal([]byte(`"mystery"`), &g))
	assert.Equal(t, GenreMystery, g)

	assert.Error(t, json.Unmarshal([]byte(`"Horror"`), &g))

	_, err = json.Marshal(Genre("Horror"))
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(1965, time.August, 1, 17, 45, 3, 99, time.UTC)
	out := DateOnly(in)
	assert.Equal(t, time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC), out)

	book := Book{PublicationDate: out}
	assert.Equal(t, "1965-08-01", book.PublicationDateString())
}

package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortOrder(t *testing.T) {
	for _, o := range SortOrders() {
		got, err := ParseSortOrder(o.Key())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}

	got, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSortOrder, got)

	got, err = ParseSortOrder(" AUTHOR_DESC ")
	require.NoError(t, err)
	assert.Equal(t, SortAuthorDesc, got)

	_, err = ParseSortOrder("name")
	assert.ErrorIs(t, err, ErrUnknownSortOrder)
}

func TestSortOrder_Labels(t *testing.T) {
	assert.Equal(t, "Book Name A-Z", SortNameAsc.Label())
	assert.Equal(t, "Book Name Z-A", SortNameDesc.Label())
	assert.Equal(t, "Author Name A-Z", SortAuthorAsc.Label())
	assert.Equal(t, "Author Name Z-A", SortAuthorDesc.Label())
}

func TestSortOrder_Reverse(t *testing.T) {
	assert.Equal(t, SortNameDesc, SortNameAsc.Reverse())
	assert.Equal(t, SortAuthorAsc, SortAuthorDesc.Reverse())
	assert.True(t, SortNameAsc.Valid())
	assert.False(t, SortOrder{}.Valid())
}

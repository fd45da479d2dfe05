package domain

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortField(t *testing.T) {
	field, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortByTitle, field)

	field, err = ParseSortField("publisheddate")
	require.NoError(t, err)
	assert.Equal(t, SortByPublishedDate, field)

	field, err = ParseSortField(" Price ")
	require.NoError(t, err)
	assert.Equal(t, SortByPrice, field)

	_, err = ParseSortField("Title; DROP TABLE books")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestBookQueryValidate(t *testing.T) {
	q := NewBookQuery()
	require.NoError(t, q.Validate())
	assert.Equal(t, 0, q.Offset())

	q.PageNumber = 3
	q.PageSize = 7
	assert.Equal(t, 14, q.Offset())

	bad := []BookQuery{
		{PageNumber: 0, PageSize: 10, SortBy: SortByTitle},
		{PageNumber: 1, PageSize: 0, SortBy: SortByTitle},
		{PageNumber: 1, PageSize: MaxPageSize + 1, SortBy: SortByTitle},
		{PageNumber: 1, PageSize: 10, SortBy: "Publisher"},
	}
	for _, q := range bad {
		assert.ErrorIs(t, q.Validate(), ErrInvalidArgument, "%+v", q)
	}
}

func TestBookQueryOffsetSaturates(t *testing.T) {
	q := NewBookQuery()
	q.PageNumber = math.MaxInt
	q.PageSize = 20
	require.NoError(t, q.Validate())
	assert.Equal(t, math.MaxInt, q.Offset())

	q.PageNumber = math.MaxInt/20 + 1
	assert.Equal(t, math.MaxInt/20*20, q.Offset())
}

func TestSortFieldCompareBreaksTiesByID(t *testing.T) {
	books := []Book{
		{ID: 3, Title: "B", Price: 5},
		{ID: 1, Title: "A", Price: 5},
		{ID: 2, Title: "C", Price: 9},
	}

	slices.SortFunc(books, func(a, b Book) int { return SortByPrice.Compare(&a, &b, true) })
	assert.Equal(t, []int64{1, 3, 2}, ids(books))

	slices.SortFunc(books, func(a, b Book) int { return SortByPrice.Compare(&a, &b, false) })
	assert.Equal(t, []int64{2, 1, 3}, ids(books))

	slices.SortFunc(books, func(a, b Book) int { return SortByTitle.Compare(&a, &b, false) })
	assert.Equal(t, []int64{2, 3, 1}, ids(books))
}

func TestSortFieldComparePublishedDate(t *testing.T) {
	older := Book{ID: 1, PublishedDate: time.Date(1949, 6, 8, 0, 0, 0, 0, time.UTC)}
	newer := Book{ID: 2, PublishedDate: time.Date(1997, 6, 26, 0, 0, 0, 0, time.UTC)}

	assert.Negative(t, SortByPublishedDate.Compare(&older, &newer, true))
	assert.Positive(t, SortByPublishedDate.Compare(&older, &newer, false))
}

func TestMatchesBook(t *testing.T) {
	b := &Book{Title: "Nineteen Eighty-Four", AuthorName: "George Orwell", CategoryName: "Fiction"}

	assert.True(t, MatchesBook(b, ""))
	assert.True(t, MatchesBook(b, "eighty"))
	assert.True(t, MatchesBook(b, "ORWELL"))
	assert.True(t, MatchesBook(b, "fict"))
	assert.False(t, MatchesBook(b, "Rowling"))
}

func TestNewBookPage(t *testing.T) {
	q := BookQuery{PageNumber: 2, PageSize: 2}
	page := NewBookPage([]Book{{ID: 3}, {ID: 4}}, 5, q)

	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageSize)

	empty := NewBookPage(nil, 0, q)
	assert.Equal(t, 0, empty.TotalPages)
}

func ids(books []Book) []int64 {
	out := make([]int64, len(books))
	for i := range books {
		out[i] = books[i].ID
	}
	return out
}

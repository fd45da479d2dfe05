package domain

import (
	"cmp"
	"math"
	"strings"
)

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// SortField names a book attribute that listings can be ordered by.
type SortField string

const (
	SortByID            SortField = "Id"
	SortByTitle         SortField = "Title"
	SortByPublishedDate SortField = "PublishedDate"
	SortByPrice         SortField = "Price"
	SortByStock         SortField = "Stock"
	SortByIsBorrowed    SortField = "IsBorrowed"
	SortByAuthorName    SortField = "AuthorName"
	SortByCategoryName  SortField = "CategoryName"
)

var bookComparators = map[SortField]func(a, b *Book) int{
	SortByID:            func(a, b *Book) int { return cmp.Compare(a.ID, b.ID) },
	SortByTitle:         func(a, b *Book) int { return strings.Compare(a.Title, b.Title) },
	SortByPublishedDate: func(a, b *Book) int { return a.PublishedDate.Compare(b.PublishedDate) },
	SortByPrice:         func(a, b *Book) int { return cmp.Compare(a.Price, b.Price) },
	SortByStock:         func(a, b *Book) int { return cmp.Compare(a.Stock, b.Stock) },
	SortByIsBorrowed:    func(a, b *Book) int { return cmp.Compare(boolRank(a.IsBorrowed), boolRank(b.IsBorrowed)) },
	SortByAuthorName:    func(a, b *Book) int { return strings.Compare(a.AuthorName, b.AuthorName) },
	SortByCategoryName:  func(a, b *Book) int { return strings.Compare(a.CategoryName, b.CategoryName) },
}

// ParseSortField resolves a caller supplied name (case-insensitive) to a SortField.
// An empty name selects SortByTitle.
func ParseSortField(name string) (SortField, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SortByTitle, nil
	}
	for field := range bookComparators {
		if strings.EqualFold(string(field), name) {
			return field, nil
		}
	}
	return "", InvalidArgumentf("unsupported sort field %q", name)
}

// Compare orders two books by the field, breaking ties by ascending id.
func (f SortField) Compare(a, b *Book, ascending bool) int {
	primary, ok := bookComparators[f]
	if !ok {
		primary = bookComparators[SortByTitle]
	}
	c := primary(a, b)
	if !ascending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}

// BookQuery selects one page of books.
type BookQuery struct {
	PageNumber int
	PageSize   int
	SortBy     SortField
	Ascending  bool
	Filter     string
}

// NewBookQuery returns a query with the listing defaults applied.
func NewBookQuery() BookQuery {
	return BookQuery{
		PageNumber: DefaultPageNumber,
		PageSize:   DefaultPageSize,
		SortBy:     SortByTitle,
		Ascending:  true,
	}
}

// Validate checks paging bounds and the sort field.
func (q BookQuery) Validate() error {
	if q.PageNumber < 1 {
		return InvalidArgumentf("page number must be at least 1")
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return InvalidArgumentf("page size must be between 1 and %d", MaxPageSize)
	}
	if _, ok := bookComparators[q.SortBy]; !ok {
		return InvalidArgumentf("unsupported sort field %q", q.SortBy)
	}
	return nil
}

// Offset is the number of matches skipped before the page starts. It saturates
// at math.MaxInt so a huge page number selects an empty page instead of wrapping.
func (q BookQuery) Offset() int {
	if q.PageNumber <= 1 || q.PageSize <= 0 {
		return 0
	}
	if q.PageNumber-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.PageNumber - 1) * q.PageSize
}

// MatchesBook reports whether filter is contained in the title, author name or
// category name, ignoring ASCII case. An empty filter matches every book.
func MatchesBook(b *Book, filter string) bool {
	if filter == "" {
		return true
	}
	needle := asciiLower(filter)
	return strings.Contains(asciiLower(b.Title), needle) ||
		strings.Contains(asciiLower(b.AuthorName), needle) ||
		strings.Contains(asciiLower(b.CategoryName), needle)
}

// asciiLower folds only A-Z, matching SQLite's lower().
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// BookPage is one page of a listing plus the size of the full match set.
type BookPage struct {
	Books      []Book
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// NewBookPage derives the page count from total and the query page size.
func NewBookPage(books []Book, total int, q BookQuery) BookPage {
	pages := 0
	if q.PageSize > 0 {
		pages = (total + q.PageSize - 1) / q.PageSize
	}
	return BookPage{
		Books:      books,
		TotalCount: total,
		TotalPages: pages,
		Page:       q.PageNumber,
		PageSize:   q.PageSize,
	}
}

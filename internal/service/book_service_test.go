package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

// countingBooks records how often the listing reaches storage.
type countingBooks struct {
	repository.BookRepository
	lists, counts int
}

func (c *countingBooks) List(ctx context.Context, q domain.BookQuery) ([]domain.Book, error) {
	c.lists++
	return c.BookRepository.List(ctx, q)
}

func (c *countingBooks) Count(ctx context.Context, filter string) (int, error) {
	c.counts++
	return c.BookRepository.Count(ctx, filter)
}

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestListBooks_PagesByTitle(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)

	q := domain.NewBookQuery()
	q.PageNumber = 2
	q.PageSize = 2

	page, err := svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Harry Potter and the Philosopher's Stone", "Principia Mathematica"}, titles(page.Books))
	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.PageSize)
}

func TestListBooks_PastLastPage(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)

	q := domain.NewBookQuery()
	q.PageNumber = 10

	page, err := svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, page.Books)
	assert.Equal(t, 5, page.TotalCount)
}

func TestListBooks_HugePageNumber(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)

	q := domain.NewBookQuery()
	q.PageNumber = math.MaxInt
	q.PageSize = 2

	page, err := svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, page.Books)
	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
}

func TestListBooks_Descending(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)

	q := domain.NewBookQuery()
	q.SortBy = domain.SortByPrice
	q.Ascending = false
	q.PageSize = 3

	page, err := svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Principia Mathematica", "Harry Potter and the Philosopher's Stone", "Relativity: The Special and General Theory"}, titles(page.Books))
}

func TestListBooks_SortByAuthorBreaksTiesByID(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)

	q := domain.NewBookQuery()
	q.SortBy = domain.SortByAuthorName

	page, err := svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	// Both Orwell books share an author; "1984" was inserted first.
	assert.Equal(t, []string{
		"Relativity: The Special and General Theory",
		"1984",
		"Animal Farm",
		"Principia Mathematica",
		"Harry Potter and the Philosopher's Stone",
	}, titles(page.Books))
}

func TestListBooks_Filter(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)

	q := domain.NewBookQuery()
	q.Filter = "Rowling"
	page, err := svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"Harry Potter and the Philosopher's Stone"}, titles(page.Books))
	assert.Equal(t, 1, page.TotalCount)

	q.Filter = "  orwell "
	page, err = svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"1984", "Animal Farm"}, titles(page.Books))

	q.Filter = "Science"
	page, err = svc.ListBooks(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
}

func TestCountMatches(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)
	ctx := context.Background()

	n, err := svc.CountMatches(ctx, "1984")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.CountMatches(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = svc.CountMatches(ctx, "fiction")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.CountMatches(ctx, "no such book")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListBooks_InvalidQueryNeverReachesStorage(t *testing.T) {
	f := newFixture(t)
	spy := &countingBooks{BookRepository: f.repos.Books}
	repos := f.repos
	repos.Books = spy
	svc := NewBookService(repos)

	bad := []domain.BookQuery{
		{PageNumber: 1, PageSize: 10, SortBy: "Password", Ascending: true},
		{PageNumber: 0, PageSize: 10, SortBy: domain.SortByTitle},
		{PageNumber: 1, PageSize: 0, SortBy: domain.SortByTitle},
		{PageNumber: 1, PageSize: domain.MaxPageSize + 1, SortBy: domain.SortByTitle},
	}
	for _, q := range bad {
		_, err := svc.ListBooks(context.Background(), q)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	}
	assert.Zero(t, spy.lists)
	assert.Zero(t, spy.counts)
}

func TestCreateBook(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)
	ctx := context.Background()

	in := BookInput{
		Title:         "  Mona Lisa Notebooks ",
		AuthorID:      f.authors["Leonardo da Vinci"],
		CategoryID:    f.categories["Art"],
		PublishedDate: time.Date(1510, 6, 1, 0, 0, 0, 0, time.UTC),
		Price:         40,
		Stock:         1,
	}
	book, err := svc.CreateBook(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Mona Lisa Notebooks", book.Title)
	assert.Equal(t, "Leonardo da Vinci", book.AuthorName)
	assert.Equal(t, "Art", book.CategoryName)
	assert.False(t, book.IsBorrowed)

	in.AuthorID = 9999
	_, err = svc.CreateBook(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	in.AuthorID = f.authors["Leonardo da Vinci"]
	in.Price = -1
	_, err = svc.CreateBook(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	in.Price = 1
	in.Title = ""
	_, err = svc.CreateBook(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestUpdateAndDeleteBook(t *testing.T) {
	f := newFixture(t)
	svc := NewBookService(f.repos)
	ctx := context.Background()
	id := f.books["Animal Farm"]

	updated, err := svc.UpdateBook(ctx, id, BookInput{
		Title:         "Animal Farm: A Fairy Story",
		AuthorID:      f.authors["George Orwell"],
		CategoryID:    f.categories["History"],
		PublishedDate: time.Date(1945, 8, 17, 0, 0, 0, 0, time.UTC),
		Price:         7,
		Stock:         2,
	})
	require.NoError(t, err)
	assert.Equal(t, "History", updated.CategoryName)
	assert.Equal(t, 7.0, updated.Price)

	deleted, err := svc.DeleteBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Animal Farm: A Fairy Story", deleted.Title)

	_, err = svc.GetBook(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.DeleteBook(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"library-api/internal/domain"
	"library-api/internal/repository"
	"library-api/internal/repository/memory"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fixture struct {
	repos      repository.Repositories
	clock      *fakeClock
	authors    map[string]int64
	categories map[string]int64
	books      map[string]int64
}

// newFixture seeds the starter catalog plus five books and returns lookups by name.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	repos := memory.NewRepositories()
	require.NoError(t, repos.Init(ctx))
	require.NoError(t, repos.Seed(ctx))

	f := &fixture{
		repos:      repos,
		clock:      &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		authors:    map[string]int64{},
		categories: map[string]int64{},
		books:      map[string]int64{},
	}

	authors, err := repos.Authors.List(ctx)
	require.NoError(t, err)
	for _, a := range authors {
		f.authors[a.Name] = a.ID
	}
	categories, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	for _, c := range categories {
		f.categories[c.Name] = c.ID
	}

	seed := []struct {
		title, author, category string
		year                    int
		price                   float64
	}{
		{"Relativity: The Special and General Theory", "Albert Einstein", "Science", 1916, 9.5},
		{"Harry Potter and the Philosopher's Stone", "J.K. Rowling", "Fiction", 1997, 12},
		{"1984", "George Orwell", "Fiction", 1949, 8},
		{"Principia Mathematica", "Isaac Newton", "Science", 1687, 30},
		{"Animal Farm", "George Orwell", "Fiction", 1945, 6.5},
	}
	for _, b := range seed {
		book := &domain.Book{
			Title:         b.title,
			AuthorID:      f.authors[b.author],
			CategoryID:    f.categories[b.category],
			PublishedDate: time.Date(b.year, 1, 1, 0, 0, 0, 0, time.UTC),
			Price:         b.price,
			Stock:         3,
		}
		_, err := repos.Books.Create(ctx, book)
		require.NoError(t, err)
		f.books[b.title] = book.ID
	}
	return f
}

func (f *fixture) addUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		UserName: email,
		Email:    email,
		Role:     domain.RoleUser,
		IsActive: true,
	}
	_, err := f.repos.Users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domain"
)

func TestAuthorService(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthorService(f.repos.Authors)
	ctx := context.Background()

	author, err := svc.CreateAuthor(ctx, "  Mary Shelley ", "English novelist.")
	require.NoError(t, err)
	assert.Equal(t, "Mary Shelley", author.Name)

	_, err = svc.CreateAuthor(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = svc.CreateAuthor(ctx, "Long Bio", strings.Repeat("x", maxBiographyLength+1))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	updated, err := svc.UpdateAuthor(ctx, author.ID, "Mary Wollstonecraft Shelley", "")
	require.NoError(t, err)
	assert.Equal(t, "Mary Wollstonecraft Shelley", updated.Name)

	require.NoError(t, svc.DeleteAuthor(ctx, author.ID))
	_, err = svc.GetAuthor(ctx, author.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryService_DeleteCascadesBooks(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.repos.Categories)
	books := NewBookService(f.repos)
	ctx := context.Background()

	_, err := svc.UpdateCategory(ctx, f.categories["Science"], strings.Repeat("s", maxNameLength+1))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	require.NoError(t, svc.DeleteCategory(ctx, f.categories["Science"]))

	n, err := books.CountMatches(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.ErrorIs(t, svc.DeleteCategory(ctx, 0), domain.ErrInvalidArgument)
}

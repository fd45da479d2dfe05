package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domain"
	"library-api/internal/storage"
)

type fakeStorage struct {
	puts    []storage.Object
	deleted []string
	expires time.Duration
}

func (s *fakeStorage) PutObject(_ context.Context, obj storage.Object) (string, error) {
	s.puts = append(s.puts, obj)
	return "s3://" + obj.Bucket + "/" + obj.Key, nil
}

func (s *fakeStorage) DeletePrefix(_ context.Context, _ string, prefix string) error {
	s.deleted = append(s.deleted, prefix)
	return nil
}

func (s *fakeStorage) GetObjectURL(_ context.Context, bucket, key string, expires time.Duration) (string, error) {
	s.expires = expires
	return "https://" + bucket + ".example.com/" + key, nil
}

func TestCoverService(t *testing.T) {
	f := newFixture(t)
	books := NewBookService(f.repos)
	store := &fakeStorage{}
	covers := NewCoverService(books, store, "covers", "/library/")
	ctx := context.Background()
	id := f.books["1984"]

	_, err := covers.URL(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	book, err := covers.Upload(ctx, id, strings.NewReader("png bytes"), "image/png")
	require.NoError(t, err)
	require.Len(t, store.puts, 1)
	assert.Equal(t, "covers", store.puts[0].Bucket)
	assert.Equal(t, "image/png", store.puts[0].ContentType)
	assert.Equal(t, book.CoverKey, store.puts[0].Key)
	assert.True(t, strings.HasPrefix(book.CoverKey, "library/books/"))

	url, err := covers.URL(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://covers.example.com/"+book.CoverKey, url)
	assert.Equal(t, CoverURLTTL, store.expires)

	require.NoError(t, covers.Remove(ctx, id))
	require.Len(t, store.deleted, 1)
	assert.True(t, strings.HasSuffix(store.deleted[0], "/"))
}

func TestCoverService_Rejections(t *testing.T) {
	f := newFixture(t)
	store := &fakeStorage{}
	covers := NewCoverService(NewBookService(f.repos), store, "covers", "")
	ctx := context.Background()

	_, err := covers.Upload(ctx, f.books["1984"], strings.NewReader("text"), "text/plain")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = covers.Upload(ctx, 9999, strings.NewReader("png"), "image/png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.puts)
}

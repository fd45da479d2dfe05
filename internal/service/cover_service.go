package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"library-api/internal/domain"
	"library-api/internal/storage"
)

// CoverURLTTL bounds how long a presigned cover link stays valid.
const CoverURLTTL = 15 * time.Minute

// CoverService stores one cover image per book in object storage.
type CoverService interface {
	Upload(ctx context.Context, bookID int64, body io.Reader, contentType string) (*domain.Book, error)
	URL(ctx context.Context, bookID int64) (string, error)
	// Remove deletes every stored object for the book. The book row itself is left alone.
	Remove(ctx context.Context, bookID int64) error
}

type coverService struct {
	books     BookService
	store     storage.Service
	bucket    string
	keyPrefix string
}

func NewCoverService(books BookService, store storage.Service, bucket, keyPrefix string) CoverService {
	return &coverService{
		books:     books,
		store:     store,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

func (s *coverService) bookPrefix(bookID int64) string {
	return path.Join(s.keyPrefix, "books", fmt.Sprint(bookID)) + "/"
}

func (s *coverService) Upload(ctx context.Context, bookID int64, body io.Reader, contentType string) (*domain.Book, error) {
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.InvalidArgumentf("cover content type %q is not an image", contentType)
	}

	key := s.bookPrefix(bookID) + "cover"
	if _, err := s.store.PutObject(ctx, storage.Object{
		Bucket:      s.bucket,
		Key:         key,
		Body:        body,
		ContentType: contentType,
	}); err != nil {
		return nil, err
	}
	if err := s.books.SetCover(ctx, bookID, key); err != nil {
		return nil, err
	}
	return s.books.GetBook(ctx, bookID)
}

func (s *coverService) URL(ctx context.Context, bookID int64) (string, error) {
	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return "", err
	}
	if book.CoverKey == "" {
		return "", domain.NotFoundf("cover for book %d", bookID)
	}
	return s.store.GetObjectURL(ctx, s.bucket, book.CoverKey, CoverURLTTL)
}

func (s *coverService) Remove(ctx context.Context, bookID int64) error {
	return s.store.DeletePrefix(ctx, s.bucket, s.bookPrefix(bookID))
}

package repository

import (
	"context"

	"library-api/internal/domain"
)

// BookRepository exposes persistence operations for catalog books.
type BookRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, book *domain.Book) (int64, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Book, error)
	// List returns one page of books matching q.Filter ordered by q.SortBy.
	List(ctx context.Context, q domain.BookQuery) ([]domain.Book, error)
	// Count returns the number of books matching filter, ignoring paging.
	Count(ctx context.Context, filter string) (int, error)
}

package repository

import (
	"context"

	"library-api/internal/domain"
)

// AuthorRepository manages author records.
type AuthorRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, author *domain.Author) (int64, error)
	Update(ctx context.Context, author *domain.Author) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Author, error)
	List(ctx context.Context) ([]domain.Author, error)
}

// CategoryRepository manages category records.
type CategoryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, category *domain.Category) (int64, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

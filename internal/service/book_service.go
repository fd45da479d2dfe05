package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

const maxTitleLength = 200

// BookInput carries the writable fields of a book.
type BookInput struct {
	Title         string
	AuthorID      int64
	CategoryID    int64
	PublishedDate time.Time
	Price         float64
	Stock         int
}

// BookService serves catalog reads and the filtered, sorted, paged book listing.
type BookService interface {
	ListBooks(ctx context.Context, q domain.BookQuery) (domain.BookPage, error)
	CountMatches(ctx context.Context, filter string) (int, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	CreateBook(ctx context.Context, in BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, in BookInput) (*domain.Book, error)
	// DeleteBook removes the book and returns it as it was before deletion.
	DeleteBook(ctx context.Context, id int64) (*domain.Book, error)
	SetCover(ctx context.Context, id int64, key string) error
}

type bookService struct {
	books      repository.BookRepository
	authors    repository.AuthorRepository
	categories repository.CategoryRepository
}

func NewBookService(repos repository.Repositories) BookService {
	return &bookService{
		books:      repos.Books,
		authors:    repos.Authors,
		categories: repos.Categories,
	}
}

func (s *bookService) ListBooks(ctx context.Context, q domain.BookQuery) (domain.BookPage, error) {
	q.Filter = strings.TrimSpace(q.Filter)
	if err := q.Validate(); err != nil {
		return domain.BookPage{}, err
	}

	books, err := s.books.List(ctx, q)
	if err != nil {
		return domain.BookPage{}, err
	}
	total, err := s.books.Count(ctx, q.Filter)
	if err != nil {
		return domain.BookPage{}, err
	}
	return domain.NewBookPage(books, total, q), nil
}

func (s *bookService) CountMatches(ctx context.Context, filter string) (int, error) {
	return s.books.Count(ctx, strings.TrimSpace(filter))
}

func (s *bookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	if id <= 0 {
		return nil, domain.InvalidArgumentf("invalid book id %d", id)
	}
	return s.books.Get(ctx, id)
}

func (s *bookService) CreateBook(ctx context.Context, in BookInput) (*domain.Book, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}
	book := &domain.Book{
		Title:         in.Title,
		AuthorID:      in.AuthorID,
		CategoryID:    in.CategoryID,
		PublishedDate: in.PublishedDate.UTC(),
		Price:         in.Price,
		Stock:         in.Stock,
	}
	if _, err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	return s.books.Get(ctx, book.ID)
}

func (s *bookService) UpdateBook(ctx context.Context, id int64, in BookInput) (*domain.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	book.Title = in.Title
	book.AuthorID = in.AuthorID
	book.CategoryID = in.CategoryID
	book.PublishedDate = in.PublishedDate.UTC()
	book.Price = in.Price
	book.Stock = in.Stock
	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return s.books.Get(ctx, id)
}

func (s *bookService) DeleteBook(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) SetCover(ctx context.Context, id int64, key string) error {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return err
	}
	book.CoverKey = key
	return s.books.Update(ctx, book)
}

func (s *bookService) validate(ctx context.Context, in *BookInput) error {
	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.Title == "":
		return domain.InvalidArgumentf("title is required")
	case len(in.Title) > maxTitleLength:
		return domain.InvalidArgumentf("title must be at most %d characters", maxTitleLength)
	case in.PublishedDate.IsZero():
		return domain.InvalidArgumentf("published date is required")
	case in.Price < 0:
		return domain.InvalidArgumentf("price must not be negative")
	case in.Stock < 0:
		return domain.InvalidArgumentf("stock must not be negative")
	}

	if _, err := s.authors.Get(ctx, in.AuthorID); err != nil {
		return referenceError(err, "author", in.AuthorID)
	}
	if _, err := s.categories.Get(ctx, in.CategoryID); err != nil {
		return referenceError(err, "category", in.CategoryID)
	}
	return nil
}

// referenceError turns a missing referenced entity into a bad request.
func referenceError(err error, entity string, id int64) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.InvalidArgumentf("%s %d does not exist", entity, id)
	}
	return err
}

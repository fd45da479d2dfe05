package service

import (
	"context"
	"strings"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

const (
	maxNameLength      = 100
	maxBiographyLength = 500
)

// AuthorService is plain CRUD over authors.
type AuthorService interface {
	ListAuthors(ctx context.Context) ([]domain.Author, error)
	GetAuthor(ctx context.Context, id int64) (*domain.Author, error)
	CreateAuthor(ctx context.Context, name, biography string) (*domain.Author, error)
	UpdateAuthor(ctx context.Context, id int64, name, biography string) (*domain.Author, error)
	DeleteAuthor(ctx context.Context, id int64) error
}

// CategoryService is plain CRUD over categories.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type authorService struct {
	authors repository.AuthorRepository
}

func NewAuthorService(authors repository.AuthorRepository) AuthorService {
	return &authorService{authors: authors}
}

func (s *authorService) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	return s.authors.List(ctx)
}

func (s *authorService) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	if id <= 0 {
		return nil, domain.InvalidArgumentf("invalid author id %d", id)
	}
	return s.authors.Get(ctx, id)
}

func (s *authorService) CreateAuthor(ctx context.Context, name, biography string) (*domain.Author, error) {
	author := &domain.Author{Name: strings.TrimSpace(name), Biography: strings.TrimSpace(biography)}
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if _, err := s.authors.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) UpdateAuthor(ctx context.Context, id int64, name, biography string) (*domain.Author, error) {
	author, err := s.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	author.Name = strings.TrimSpace(name)
	author.Biography = strings.TrimSpace(biography)
	if err := validateAuthor(author); err != nil {
		return nil, err
	}
	if err := s.authors.Update(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) DeleteAuthor(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.InvalidArgumentf("invalid author id %d", id)
	}
	return s.authors.Delete(ctx, id)
}

func validateAuthor(a *domain.Author) error {
	if err := validateName(a.Name); err != nil {
		return err
	}
	if len(a.Biography) > maxBiographyLength {
		return domain.InvalidArgumentf("biography must be at most %d characters", maxBiographyLength)
	}
	return nil
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, domain.InvalidArgumentf("invalid category id %d", id)
	}
	return s.categories.Get(ctx, id)
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{Name: strings.TrimSpace(name)}
	if err := validateName(category.Name); err != nil {
		return nil, err
	}
	if _, err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int64, name string) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = strings.TrimSpace(name)
	if err := validateName(category.Name); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.InvalidArgumentf("invalid category id %d", id)
	}
	return s.categories.Delete(ctx, id)
}

func validateName(name string) error {
	if name == "" {
		return domain.InvalidArgumentf("name is required")
	}
	if len(name) > maxNameLength {
		return domain.InvalidArgumentf("name must be at most %d characters", maxNameLength)
	}
	return nil
}

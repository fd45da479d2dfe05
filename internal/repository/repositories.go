package repository

import (
	"context"
	"fmt"

	"library-api/internal/domain"
)

// Repositories bundles one implementation of every entity repository.
type Repositories struct {
	Authors    AuthorRepository
	Categories CategoryRepository
	Books      BookRepository
	Users      UserRepository
	Borrowings BorrowingRepository
}

// Init prepares the underlying storage. Referenced tables come first.
func (r Repositories) Init(ctx context.Context) error {
	steps := []struct {
		name string
		init func(context.Context) error
	}{
		{"authors", r.Authors.Init},
		{"categories", r.Categories.Init},
		{"books", r.Books.Init},
		{"users", r.Users.Init},
		{"borrowings", r.Borrowings.Init},
	}
	for _, step := range steps {
		if err := step.init(ctx); err != nil {
			return fmt.Errorf("init %s repository: %w", step.name, err)
		}
	}
	return nil
}

var seedCategories = []string{"Fiction", "Science", "History", "Technology", "Art"}

var seedAuthors = []domain.Author{
	{Name: "J.K. Rowling", Biography: "British author, best known for writing the Harry Potter series."},
	{Name: "Isaac Newton", Biography: "English mathematician, physicist, and astronomer, widely recognized for his laws of motion and gravity."},
	{Name: "George Orwell", Biography: "English novelist, essayist, journalist, and critic, famous for works like '1984' and 'Animal Farm'."},
	{Name: "Albert Einstein", Biography: "Theoretical physicist best known for developing the theory of relativity and the famous equation E=mc^2."},
	{Name: "Leonardo da Vinci", Biography: "Renaissance polymath known for his contributions to art, science, and engineering, including masterpieces like 'Mona Lisa'."},
}

// Seed inserts the starter categories and authors when their tables are empty.
func (r Repositories) Seed(ctx context.Context) error {
	categories, err := r.Categories.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		for _, name := range seedCategories {
			if _, err := r.Categories.Create(ctx, &domain.Category{Name: name}); err != nil {
				return fmt.Errorf("seed category %s: %w", name, err)
			}
		}
	}

	authors, err := r.Authors.List(ctx)
	if err != nil {
		return fmt.Errorf("list authors: %w", err)
	}
	if len(authors) == 0 {
		for _, author := range seedAuthors {
			if _, err := r.Authors.Create(ctx, &author); err != nil {
				return fmt.Errorf("seed author %s: %w", author.Name, err)
			}
		}
	}
	return nil
}

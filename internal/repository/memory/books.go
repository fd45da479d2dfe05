package memory

import (
	"context"
	"slices"

	"library-api/internal/domain"
)

type BookRepository struct {
	store *Store
}

func (r *BookRepository) Init(context.Context) error { return nil }

func (r *BookRepository) Create(_ context.Context, book *domain.Book) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.checkRefsLocked(book); err != nil {
		return 0, err
	}
	book.ID = r.store.nextID()
	r.store.books[book.ID] = withoutNames(*book)
	return book.ID, nil
}

func (r *BookRepository) Update(_ context.Context, book *domain.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.books[book.ID]; !ok {
		return domain.NotFoundf("book %d", book.ID)
	}
	if err := r.checkRefsLocked(book); err != nil {
		return err
	}
	r.store.books[book.ID] = withoutNames(*book)
	return nil
}

func (r *BookRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.books[id]; !ok {
		return domain.NotFoundf("book %d", id)
	}
	r.store.deleteBookLocked(id)
	return nil
}

func (r *BookRepository) Get(_ context.Context, id int64) (*domain.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	book, ok := r.store.books[id]
	if !ok {
		return nil, domain.NotFoundf("book %d", id)
	}
	book = r.withNamesLocked(book)
	return &book, nil
}

func (r *BookRepository) List(_ context.Context, q domain.BookQuery) ([]domain.Book, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matches := r.matchingLocked(q.Filter)
	slices.SortFunc(matches, func(a, b domain.Book) int {
		return q.SortBy.Compare(&a, &b, q.Ascending)
	})

	start := min(max(q.Offset(), 0), len(matches))
	end := start + min(q.PageSize, len(matches)-start)
	return slices.Clone(matches[start:end]), nil
}

func (r *BookRepository) Count(_ context.Context, filter string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.matchingLocked(filter)), nil
}

func (r *BookRepository) matchingLocked(filter string) []domain.Book {
	matches := make([]domain.Book, 0, len(r.store.books))
	for _, book := range r.store.books {
		book = r.withNamesLocked(book)
		if domain.MatchesBook(&book, filter) {
			matches = append(matches, book)
		}
	}
	return matches
}

func (r *BookRepository) checkRefsLocked(book *domain.Book) error {
	_, authorOK := r.store.authors[book.AuthorID]
	_, categoryOK := r.store.categories[book.CategoryID]
	if !authorOK || !categoryOK {
		return domain.InvalidArgumentf("book references unknown author or category")
	}
	return nil
}

func (r *BookRepository) withNamesLocked(book domain.Book) domain.Book {
	book.AuthorName = r.store.authors[book.AuthorID].Name
	book.CategoryName = r.store.categories[book.CategoryID].Name
	return book
}

func withoutNames(book domain.Book) domain.Book {
	book.AuthorName = ""
	book.CategoryName = ""
	return book
}

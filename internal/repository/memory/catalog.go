package memory

import (
	"context"
	"sort"

	"library-api/internal/domain"
)

type AuthorRepository struct {
	store *Store
}

func (r *AuthorRepository) Init(context.Context) error { return nil }

func (r *AuthorRepository) Create(_ context.Context, author *domain.Author) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	author.ID = r.store.nextID()
	r.store.authors[author.ID] = *author
	return author.ID, nil
}

func (r *AuthorRepository) Update(_ context.Context, author *domain.Author) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.authors[author.ID]; !ok {
		return domain.NotFoundf("author %d", author.ID)
	}
	r.store.authors[author.ID] = *author
	return nil
}

func (r *AuthorRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.authors[id]; !ok {
		return domain.NotFoundf("author %d", id)
	}
	delete(r.store.authors, id)
	for bid, book := range r.store.books {
		if book.AuthorID == id {
			r.store.deleteBookLocked(bid)
		}
	}
	return nil
}

func (r *AuthorRepository) Get(_ context.Context, id int64) (*domain.Author, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	author, ok := r.store.authors[id]
	if !ok {
		return nil, domain.NotFoundf("author %d", id)
	}
	return &author, nil
}

func (r *AuthorRepository) List(context.Context) ([]domain.Author, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	authors := make([]domain.Author, 0, len(r.store.authors))
	for _, author := range r.store.authors {
		authors = append(authors, author)
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].ID < authors[j].ID })
	return authors, nil
}

type CategoryRepository struct {
	store *Store
}

func (r *CategoryRepository) Init(context.Context) error { return nil }

func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category.ID = r.store.nextID()
	r.store.categories[category.ID] = *category
	return category.ID, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.ID]; !ok {
		return domain.NotFoundf("category %d", category.ID)
	}
	r.store.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return domain.NotFoundf("category %d", id)
	}
	delete(r.store.categories, id)
	for bid, book := range r.store.books {
		if book.CategoryID == id {
			r.store.deleteBookLocked(bid)
		}
	}
	return nil
}

func (r *CategoryRepository) Get(_ context.Context, id int64) (*domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, domain.NotFoundf("category %d", id)
	}
	return &category, nil
}

func (r *CategoryRepository) List(context.Context) ([]domain.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

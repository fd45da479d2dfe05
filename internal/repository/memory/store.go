// Package memory holds map-backed repositories used for tests and for
// running the API without a database file.
package memory

import (
	"sync"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

// Store is the shared state behind every memory repository. Books resolve
// author and category names through it, and deletes cascade like the sqlite schema.
type Store struct {
	mu sync.RWMutex

	authors    map[int64]domain.Author
	categories map[int64]domain.Category
	books      map[int64]domain.Book
	users      map[int64]domain.User
	borrowings map[int64]domain.BorrowingRecord

	lastID int64
}

func NewStore() *Store {
	return &Store{
		authors:    make(map[int64]domain.Author),
		categories: make(map[int64]domain.Category),
		books:      make(map[int64]domain.Book),
		users:      make(map[int64]domain.User),
		borrowings: make(map[int64]domain.BorrowingRecord),
	}
}

// NewRepositories returns repositories backed by a fresh Store.
func NewRepositories() repository.Repositories {
	return NewStore().Repositories()
}

func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Authors:    &AuthorRepository{store: s},
		Categories: &CategoryRepository{store: s},
		Books:      &BookRepository{store: s},
		Users:      &UserRepository{store: s},
		Borrowings: &BorrowingRepository{store: s},
	}
}

// nextID must be called with mu held for writing. Ids are unique across tables.
func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

// deleteBookLocked removes a book and the borrowing records that reference it.
func (s *Store) deleteBookLocked(id int64) {
	delete(s.books, id)
	for rid, rec := range s.borrowings {
		if rec.BookID == id {
			delete(s.borrowings, rid)
		}
	}
}

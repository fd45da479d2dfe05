package domain

import "time"

// Author is a writer referenced by books.
type Author struct {
	ID        int64
	Name      string
	Biography string
}

// Category groups books by subject.
type Category struct {
	ID   int64
	Name string
}

// Book is a catalog entry. AuthorName and CategoryName are populated on reads.
type Book struct {
	ID            int64
	Title         string
	AuthorID      int64
	AuthorName    string
	CategoryID    int64
	CategoryName  string
	PublishedDate time.Time
	Price         float64
	Stock         int
	IsBorrowed    bool
	CoverKey      string
}

package repository

import (
	"context"

	"library-api/internal/domain"
)

// BorrowingRepository persists the borrowing-history ledger.
type BorrowingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, record *domain.BorrowingRecord) (int64, error)
	Get(ctx context.Context, id int64) (*domain.BorrowingRecord, error)
	Update(ctx context.Context, record *domain.BorrowingRecord) error
	ListByUser(ctx context.Context, userID int64) ([]domain.BorrowingRecord, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.BorrowingRecord, error)
	// FindOpen returns the unreturned record of userID for bookID, if any.
	FindOpen(ctx context.Context, bookID, userID int64) (*domain.BorrowingRecord, error)
}

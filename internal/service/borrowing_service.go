package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"library-api/internal/domain"
	"library-api/internal/metrics"
	"library-api/internal/repository"
)

// BorrowingService owns the borrow/return/late-fee lifecycle of borrowing records.
type BorrowingService interface {
	BorrowBook(ctx context.Context, bookID, userID int64) (*domain.BorrowingRecord, error)
	GetBorrowing(ctx context.Context, id int64) (*domain.BorrowingRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BorrowingRecord, error)
	ListByBook(ctx context.Context, bookID int64) ([]domain.BorrowingRecord, error)
	// CalculateLateFee reports the fee the record would owe if returned now.
	CalculateLateFee(ctx context.Context, id int64) (float64, error)
	// ReturnBook closes the record at the current time and stores its late fee.
	ReturnBook(ctx context.Context, id int64) (*domain.BorrowingRecord, error)
}

type borrowingService struct {
	borrowings repository.BorrowingRepository
	books      repository.BookRepository
	users      repository.UserRepository
	clock      func() time.Time
	logger     logrus.FieldLogger
}

// NewBorrowingService builds the ledger. A nil clock falls back to time.Now.
func NewBorrowingService(repos repository.Repositories, clock func() time.Time, logger logrus.FieldLogger) BorrowingService {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &borrowingService{
		borrowings: repos.Borrowings,
		books:      repos.Books,
		users:      repos.Users,
		clock:      clock,
		logger:     logger,
	}
}

func (s *borrowingService) now() time.Time {
	return s.clock().UTC()
}

func (s *borrowingService) BorrowBook(ctx context.Context, bookID, userID int64) (*domain.BorrowingRecord, error) {
	if bookID <= 0 || userID <= 0 {
		return nil, domain.InvalidArgumentf("book id and user id must be positive")
	}
	if _, err := s.books.Get(ctx, bookID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.InvalidArgumentf("user %d is not active", userID)
	}

	open, err := s.borrowings.FindOpen(ctx, bookID, userID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("user %d already holds book %d in record %d: %w", userID, bookID, open.ID, domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	record := &domain.BorrowingRecord{
		BookID:       bookID,
		UserID:       userID,
		BorrowedDate: s.now(),
	}
	if _, err := s.borrowings.Create(ctx, record); err != nil {
		return nil, err
	}

	metrics.RecordBorrow()
	s.logger.WithFields(logrus.Fields{
		"borrowing_id": record.ID,
		"book_id":      bookID,
		"user_id":      userID,
	}).Info("book borrowed")
	return record, nil
}

func (s *borrowingService) GetBorrowing(ctx context.Context, id int64) (*domain.BorrowingRecord, error) {
	if id <= 0 {
		return nil, domain.InvalidArgumentf("invalid borrowing record id %d", id)
	}
	return s.borrowings.Get(ctx, id)
}

func (s *borrowingService) ListByUser(ctx context.Context, userID int64) ([]domain.BorrowingRecord, error) {
	if userID <= 0 {
		return nil, domain.InvalidArgumentf("invalid user id %d", userID)
	}
	return s.borrowings.ListByUser(ctx, userID)
}

func (s *borrowingService) ListByBook(ctx context.Context, bookID int64) ([]domain.BorrowingRecord, error) {
	if bookID <= 0 {
		return nil, domain.InvalidArgumentf("invalid book id %d", bookID)
	}
	return s.borrowings.ListByBook(ctx, bookID)
}

func (s *borrowingService) CalculateLateFee(ctx context.Context, id int64) (float64, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return domain.LateFee(record.BorrowedDate, s.now()), nil
}

func (s *borrowingService) ReturnBook(ctx context.Context, id int64) (*domain.BorrowingRecord, error) {
	record, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Returned() {
		return nil, fmt.Errorf("borrowing record %d: %w", id, domain.ErrAlreadyReturned)
	}

	now := s.now()
	returned := now
	if returned.Before(record.BorrowedDate) {
		returned = record.BorrowedDate
	}
	record.ReturnedDate = &returned
	record.LateFee = domain.LateFee(record.BorrowedDate, now)

	if err := s.borrowings.Update(ctx, record); err != nil {
		return nil, err
	}

	metrics.RecordReturn(record.LateFee)
	s.logger.WithFields(logrus.Fields{
		"borrowing_id": record.ID,
		"book_id":      record.BookID,
		"user_id":      record.UserID,
		"late_fee":     record.LateFee,
	}).Info("book returned")
	return record, nil
}

func (s *borrowingService) load(ctx context.Context, id int64) (*domain.BorrowingRecord, error) {
	if id <= 0 {
		return nil, domain.InvalidArgumentf("invalid borrowing record id %d", id)
	}
	record, err := s.borrowings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.BorrowedDate.IsZero() {
		return nil, domain.InvalidArgumentf("borrowing record %d has no borrowed date", id)
	}
	return record, nil
}

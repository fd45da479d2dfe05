package domain

import "time"

const (
	// BorrowingPeriod is how long a book may be held before late fees accrue.
	BorrowingPeriod = 14 * 24 * time.Hour
	// LateFeePerDay is charged for every whole day past the due date.
	LateFeePerDay = 2.0
)

// BorrowingRecord tracks one user holding one book.
type BorrowingRecord struct {
	ID           int64
	BookID       int64
	UserID       int64
	BorrowedDate time.Time
	ReturnedDate *time.Time
	LateFee      float64
}

// DueDate is the last instant the book can be returned without a fee.
func (r *BorrowingRecord) DueDate() time.Time {
	return r.BorrowedDate.Add(BorrowingPeriod)
}

// Returned reports whether the book has been handed back.
func (r *BorrowingRecord) Returned() bool {
	return r.ReturnedDate != nil
}

// LateFee computes the fee owed at now for a book borrowed at borrowed.
// Returning exactly on the due date costs nothing.
func LateFee(borrowed, now time.Time) float64 {
	due := borrowed.Add(BorrowingPeriod)
	if !now.After(due) {
		return 0
	}
	daysLate := now.Sub(due) / (24 * time.Hour)
	return float64(daysLate) * LateFeePerDay
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

const createBorrowingTable = `
CREATE TABLE IF NOT EXISTS borrowing_histories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	book_id INTEGER NOT NULL,
	user_id INTEGER NOT NULL,
	borrowed_date DATETIME NOT NULL,
	returned_date DATETIME NULL,
	late_fee REAL NOT NULL DEFAULT 0 CHECK (late_fee >= 0),
	FOREIGN KEY(book_id) REFERENCES books(id) ON DELETE CASCADE,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_borrowing_histories_book_id ON borrowing_histories(book_id);
CREATE INDEX IF NOT EXISTS idx_borrowing_histories_user_id ON borrowing_histories(user_id);
`

const selectBorrowingColumns = `SELECT id, book_id, user_id, borrowed_date, returned_date, late_fee FROM borrowing_histories`

type BorrowingRepository struct {
	db *sql.DB
}

func NewBorrowingRepository(db *sql.DB) repository.BorrowingRepository {
	return &BorrowingRepository{db: db}
}

func (r *BorrowingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBorrowingTable); err != nil {
		return fmt.Errorf("create borrowing_histories table: %w", err)
	}
	return nil
}

func (r *BorrowingRepository) Create(ctx context.Context, record *domain.BorrowingRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO borrowing_histories (book_id, user_id, borrowed_date, returned_date, late_fee)
VALUES (?, ?, ?, ?, ?)`,
		record.BookID,
		record.UserID,
		record.BorrowedDate.UTC(),
		nullTime(record.ReturnedDate),
		record.LateFee,
	)
	if err != nil {
		if foreignKeyViolation(err) {
			return 0, domain.InvalidArgumentf("borrowing references unknown book or user")
		}
		return 0, fmt.Errorf("insert borrowing: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("borrowing last insert id: %w", err)
	}
	record.ID = id
	return id, nil
}

func (r *BorrowingRepository) Get(ctx context.Context, id int64) (*domain.BorrowingRecord, error) {
	row := r.db.QueryRowContext(ctx, selectBorrowingColumns+` WHERE id=?`, id)
	record, err := scanBorrowing(row)
	if err != nil {
		return nil, notFound(err, "borrowing record", id)
	}
	return record, nil
}

func (r *BorrowingRepository) Update(ctx context.Context, record *domain.BorrowingRecord) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE borrowing_histories
SET book_id=?, user_id=?, borrowed_date=?, returned_date=?, late_fee=?
WHERE id=?`,
		record.BookID,
		record.UserID,
		record.BorrowedDate.UTC(),
		nullTime(record.ReturnedDate),
		record.LateFee,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update borrowing: %w", err)
	}
	return requireAffected(res, "borrowing record", record.ID)
}

func (r *BorrowingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BorrowingRecord, error) {
	return r.list(ctx, `WHERE user_id=?`, userID)
}

func (r *BorrowingRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.BorrowingRecord, error) {
	return r.list(ctx, `WHERE book_id=?`, bookID)
}

func (r *BorrowingRepository) FindOpen(ctx context.Context, bookID, userID int64) (*domain.BorrowingRecord, error) {
	row := r.db.QueryRowContext(ctx, selectBorrowingColumns+`
WHERE book_id=? AND user_id=? AND returned_date IS NULL
ORDER BY id DESC
LIMIT 1`,
		bookID,
		userID,
	)
	record, err := scanBorrowing(row)
	if err != nil {
		return nil, notFound(err, "open borrowing record", fmt.Sprintf("book=%d user=%d", bookID, userID))
	}
	return record, nil
}

func (r *BorrowingRepository) list(ctx context.Context, where string, arg any) ([]domain.BorrowingRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectBorrowingColumns+` `+where+` ORDER BY borrowed_date DESC, id DESC`, arg)
	if err != nil {
		return nil, fmt.Errorf("query borrowings: %w", err)
	}
	defer rows.Close()

	var records []domain.BorrowingRecord
	for rows.Next() {
		record, err := scanBorrowing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan borrowing: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanBorrowing(row rowScanner) (*domain.BorrowingRecord, error) {
	var (
		record   domain.BorrowingRecord
		returned sql.NullTime
	)
	if err := row.Scan(
		&record.ID,
		&record.BookID,
		&record.UserID,
		&record.BorrowedDate,
		&returned,
		&record.LateFee,
	); err != nil {
		return nil, err
	}
	record.BorrowedDate = record.BorrowedDate.UTC()
	record.ReturnedDate = timePtr(returned)
	return &record, nil
}

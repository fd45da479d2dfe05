package memory

import (
	"context"
	"sort"

	"library-api/internal/domain"
)

type BorrowingRepository struct {
	store *Store
}

func (r *BorrowingRepository) Init(context.Context) error { return nil }

func (r *BorrowingRepository) Create(_ context.Context, record *domain.BorrowingRecord) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, bookOK := r.store.books[record.BookID]
	_, userOK := r.store.users[record.UserID]
	if !bookOK || !userOK {
		return 0, domain.InvalidArgumentf("borrowing references unknown book or user")
	}
	record.ID = r.store.nextID()
	r.store.borrowings[record.ID] = cloneRecord(*record)
	return record.ID, nil
}

func (r *BorrowingRepository) Get(_ context.Context, id int64) (*domain.BorrowingRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	record, ok := r.store.borrowings[id]
	if !ok {
		return nil, domain.NotFoundf("borrowing record %d", id)
	}
	rec := cloneRecord(record)
	return &rec, nil
}

func (r *BorrowingRepository) Update(_ context.Context, record *domain.BorrowingRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.borrowings[record.ID]; !ok {
		return domain.NotFoundf("borrowing record %d", record.ID)
	}
	r.store.borrowings[record.ID] = cloneRecord(*record)
	return nil
}

func (r *BorrowingRepository) ListByUser(_ context.Context, userID int64) ([]domain.BorrowingRecord, error) {
	return r.list(func(rec domain.BorrowingRecord) bool { return rec.UserID == userID }), nil
}

func (r *BorrowingRepository) ListByBook(_ context.Context, bookID int64) ([]domain.BorrowingRecord, error) {
	return r.list(func(rec domain.BorrowingRecord) bool { return rec.BookID == bookID }), nil
}

func (r *BorrowingRepository) FindOpen(_ context.Context, bookID, userID int64) (*domain.BorrowingRecord, error) {
	open := r.list(func(rec domain.BorrowingRecord) bool {
		return rec.BookID == bookID && rec.UserID == userID && rec.ReturnedDate == nil
	})
	if len(open) == 0 {
		return nil, domain.NotFoundf("open borrowing record book=%d user=%d", bookID, userID)
	}
	return &open[0], nil
}

// list returns matching records, most recently borrowed first.
func (r *BorrowingRepository) list(match func(domain.BorrowingRecord) bool) []domain.BorrowingRecord {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []domain.BorrowingRecord
	for _, rec := range r.store.borrowings {
		if match(rec) {
			records = append(records, cloneRecord(rec))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].BorrowedDate.Equal(records[j].BorrowedDate) {
			return records[i].BorrowedDate.After(records[j].BorrowedDate)
		}
		return records[i].ID > records[j].ID
	})
	return records
}

func cloneRecord(rec domain.BorrowingRecord) domain.BorrowingRecord {
	if rec.ReturnedDate != nil {
		t := *rec.ReturnedDate
		rec.ReturnedDate = &t
	}
	return rec
}

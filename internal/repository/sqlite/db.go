package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"library-api/internal/domain"
	"library-api/internal/repository"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a sqlite database at the given path and ensures directories exist.
// Foreign keys are enforced on every connection so deletes cascade.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// sqlite serialises writers; one connection avoids SQLITE_BUSY between them
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound for the named entity.
func notFound(err error, entity string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("%s %v", entity, id)
	}
	return fmt.Errorf("scan %s: %w", entity, err)
}

// requireAffected reports domain.ErrNotFound when an update or delete touched nothing.
func requireAffected(res sql.Result, entity string, id int64) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if aff == 0 {
		return domain.NotFoundf("%s %d", entity, id)
	}
	return nil
}

// foreignKeyViolation reports whether err came from a failed REFERENCES check.
func foreignKeyViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

func uniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}

// NewRepositories returns sqlite-backed repositories sharing db.
func NewRepositories(db *sql.DB) repository.Repositories {
	return repository.Repositories{
		Authors:    NewAuthorRepository(db),
		Categories: NewCategoryRepository(db),
		Books:      NewBookRepository(db),
		Users:      NewUserRepository(db),
		Borrowings: NewBorrowingRepository(db),
	}
}

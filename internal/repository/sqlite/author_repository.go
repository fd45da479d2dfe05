package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

const createAuthorsTable = `
CREATE TABLE IF NOT EXISTS authors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	biography TEXT NOT NULL DEFAULT ''
);
`

type AuthorRepository struct {
	db *sql.DB
}

func NewAuthorRepository(db *sql.DB) repository.AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAuthorsTable); err != nil {
		return fmt.Errorf("create authors table: %w", err)
	}
	return nil
}

func (r *AuthorRepository) Create(ctx context.Context, author *domain.Author) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO authors (name, biography) VALUES (?, ?)`,
		author.Name,
		author.Biography,
	)
	if err != nil {
		return 0, fmt.Errorf("insert author: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("author last insert id: %w", err)
	}
	author.ID = id
	return id, nil
}

func (r *AuthorRepository) Update(ctx context.Context, author *domain.Author) error {
	res, err := r.db.ExecContext(ctx, `UPDATE authors SET name=?, biography=? WHERE id=?`,
		author.Name,
		author.Biography,
		author.ID,
	)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	return requireAffected(res, "author", author.ID)
}

func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return requireAffected(res, "author", id)
}

func (r *AuthorRepository) Get(ctx context.Context, id int64) (*domain.Author, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, biography FROM authors WHERE id=?`, id)
	var author domain.Author
	if err := row.Scan(&author.ID, &author.Name, &author.Biography); err != nil {
		return nil, notFound(err, "author", id)
	}
	return &author, nil
}

func (r *AuthorRepository) List(ctx context.Context) ([]domain.Author, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, biography FROM authors ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	var authors []domain.Author
	for rows.Next() {
		var author domain.Author
		if err := rows.Scan(&author.ID, &author.Name, &author.Biography); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, author)
	}
	return authors, rows.Err()
}

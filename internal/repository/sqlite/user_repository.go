package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"library-api/internal/domain"
	"library-api/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE COLLATE NOCASE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'User',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	last_login DATETIME NULL
);
`

const selectUserColumns = `SELECT id, user_name, email, password_hash, role, is_active, created_at, last_login FROM users`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (user_name, email, password_hash, role, is_active, created_at, last_login)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.UserName,
		strings.TrimSpace(user.Email),
		user.PasswordHash,
		string(user.Role),
		user.IsActive,
		user.CreatedAt.UTC(),
		nullTime(user.LastLogin),
	)
	if err != nil {
		if uniqueViolation(err) {
			return 0, fmt.Errorf("user %s already exists: %w", user.Email, domain.ErrConflict)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET user_name=?, email=?, password_hash=?, role=?, is_active=?, last_login=?
WHERE id=?`,
		user.UserName,
		strings.TrimSpace(user.Email),
		user.PasswordHash,
		string(user.Role),
		user.IsActive,
		nullTime(user.LastLogin),
		user.ID,
	)
	if err != nil {
		if uniqueViolation(err) {
			return fmt.Errorf("email %s already in use: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return requireAffected(res, "user", user.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(res, "user", id)
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET last_login=? WHERE id=?`, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return requireAffected(res, "user", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	row := r.db.QueryRowContext(ctx, selectUserColumns+` WHERE email = ?`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUserColumns+` WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUserColumns+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user      domain.User
		role      string
		lastLogin sql.NullTime
	)
	if err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.Email,
		&user.PasswordHash,
		&role,
		&user.IsActive,
		&user.CreatedAt,
		&lastLogin,
	); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	user.CreatedAt = user.CreatedAt.UTC()
	user.LastLogin = timePtr(lastLogin)
	return &user, nil
}

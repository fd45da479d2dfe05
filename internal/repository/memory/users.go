package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"library-api/internal/domain"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Init(context.Context) error { return nil }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailTakenLocked(user.Email, 0) {
		return 0, fmt.Errorf("user %s already exists: %w", user.Email, domain.ErrConflict)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.ID = r.store.nextID()
	r.store.users[user.ID] = cloneUser(*user)
	return user.ID, nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return domain.NotFoundf("user %d", user.ID)
	}
	if r.emailTakenLocked(user.Email, user.ID) {
		return fmt.Errorf("email %s already in use: %w", user.Email, domain.ErrConflict)
	}
	r.store.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return domain.NotFoundf("user %d", id)
	}
	delete(r.store.users, id)
	for rid, rec := range r.store.borrowings {
		if rec.UserID == id {
			delete(r.store.borrowings, rid)
		}
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.NotFoundf("user %d", id)
	}
	at = at.UTC()
	user.LastLogin = &at
	r.store.users[id] = user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	email = strings.TrimSpace(email)
	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			u := cloneUser(user)
			return &u, nil
		}
	}
	return nil, domain.NotFoundf("user %s", email)
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.NotFoundf("user %d", id)
	}
	u := cloneUser(user)
	return &u, nil
}

func (r *UserRepository) List(context.Context) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]domain.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserRepository) emailTakenLocked(email string, exceptID int64) bool {
	email = strings.TrimSpace(email)
	for id, user := range r.store.users {
		if id != exceptID && strings.EqualFold(user.Email, email) {
			return true
		}
	}
	return false
}

func cloneUser(u domain.User) domain.User {
	u.Email = strings.TrimSpace(u.Email)
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}
	return u
}

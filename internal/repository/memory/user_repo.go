// Package memory holds in-process implementations of the repository
// interfaces. They back the service and hub tests and keep the same
// semantics as the postgres repositories.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/MateoL17/LinKage/internal/domain"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User // keyed by username
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Username] = *user
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) ListExcept(_ context.Context, username string) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []domain.User
	for _, u := range r.users {
		if u.Username != username {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

package memory

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

type UserRepository struct {
	table[domain.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{table: table[domain.User]{rows: make(map[string]*domain.User)}}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, "") {
		return nil, domain.ErrUserExists
	}
	u := *user
	u.ID = newID()
	r.rows[u.ID] = &u
	out := u
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.rows {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.rows[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return nil, domain.ErrUserExists
	}
	u.Email = user.Email
	u.Name = user.Name
	u.UpdatedAt = user.UpdatedAt
	out := *u
	return &out, nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.rows[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *UserRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]*domain.User)
	return nil
}

// emailTaken must be called with the lock held.
func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.rows {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

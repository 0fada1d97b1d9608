package ports

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// UserRepository persists user identities. Email uniqueness is enforced by the
// store; Create and UpdateProfile return domain.ErrUserExists on conflict.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	DeleteAll(ctx context.Context) error
}

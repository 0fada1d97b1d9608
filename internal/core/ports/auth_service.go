package ports

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create a user account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     domain.Role // empty defaults to domain.RoleUser
}

// AuthService handles credential checks and account creation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

package ports

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// UpdateProfileInput is a partial profile update. The password is changed
// through ChangePassword only.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// UserService serves the authenticated user's own profile.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

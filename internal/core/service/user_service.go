package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

// UserService serves profiles. It caches one slot per user and refreshes
// that slot on write instead of flushing the whole cache.
type UserService struct {
	repo  ports.UserRepository
	slot  readThrough[*domain.User]
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.Cache, ttl time.Duration, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	if audit == nil {
		audit = NopRecorder{}
	}
	return &UserService{
		repo:  repo,
		slot:  newReadThrough[*domain.User](cache, ttl, domain.EntityUser, log),
		audit: audit,
		log:   log,
	}
}

func userKey(id string) string { return "user:" + id }

// Profile returns the user with the given id. The cached copy never carries
// the password hash.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.slot.get(ctx, userKey(userID), func(ctx context.Context) (*domain.User, error) {
		u, err := s.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, s.wrap("profile", err)
		}
		return u, nil
	})
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, s.wrap("update profile", err)
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		u.Email = domain.NormalizeEmail(*in.Email)
	}
	u.UpdatedAt = time.Now().UTC()
	if err := u.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProfile(ctx, u)
	if err != nil {
		return nil, s.wrap("update profile", err)
	}
	s.slot.put(ctx, userKey(userID), updated)
	record(ctx, s.audit, domain.EntityUser, userID, domain.AuditUpdated, time.Now)
	return updated, nil
}

// ChangePassword verifies the current password and stores a fresh hash of
// the new one. It is the only path that writes a password hash after creation.
func (s *UserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := domain.ValidatePassword("newPassword", next); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return s.wrap("change password", err)
	}
	if !u.CheckPassword(current) {
		return domain.ErrInvalidCredentials
	}
	if err := u.SetPassword(next); err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, u.PasswordHash); err != nil {
		return s.wrap("change password", err)
	}

	u.PasswordHash = ""
	s.slot.put(ctx, userKey(userID), u)
	record(ctx, s.audit, domain.EntityUser, userID, domain.AuditUpdated, time.Now)
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *UserService) wrap(op string, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUserExists) {
		return err
	}
	s.log.Error().Err(err).Str("op", "user."+op).Msg("user operation failed")
	return fmt.Errorf("%s: %w", op, err)
}

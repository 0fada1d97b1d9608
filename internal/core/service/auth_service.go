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

// dummyUser carries a valid bcrypt hash so that a login for an unknown email
// costs the same as one with a wrong password.
var dummyUser = func() *domain.User {
	u := &domain.User{}
	_ = u.SetPassword("not-a-real-password")
	return u
}()

// AuthService implements login and account registration.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

// Login verifies credentials and returns a bearer token. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)

	var errs []domain.FieldError
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "email is required"})
	}
	if password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		return "", &domain.ValidationError{Fields: errs}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		dummyUser.CheckPassword(password)
		return "", domain.ErrInvalidCredentials
	case err != nil:
		return "", fmt.Errorf("login: %w", err)
	}

	if !user.CheckPassword(password) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, nil
}

// Register creates a user with a freshly hashed password.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := domain.ValidatePassword("password", in.Password); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:     domain.NormalizeEmail(in.Email),
		Name:      strings.TrimSpace(in.Name),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) Profile(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) UpdateProfile(context.Context, string, ports.UpdateProfileInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUsers) ChangePassword(context.Context, string, string, string) error {
	return errors.New("not implemented")
}

func runRBAC(t *testing.T, userID string) (int, bool) {
	t.Helper()
	users := &stubUsers{users: map[string]*domain.User{
		"admin-1": {ID: "admin-1", Role: domain.RoleAdmin},
		"user-1":  {ID: "user-1", Role: domain.RoleUser},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(ContextKeyUserID, userID)
	}

	called := false
	handler := RBAC(users, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			return he.Code, called
		case errors.Is(err, domain.ErrForbidden):
			return http.StatusForbidden, called
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return rec.Code, called
}

func TestRBAC_Allows(t *testing.T) {
	code, called := runRBAC(t, "admin-1")
	if !called {
		t.Fatalf("next handler not called")
	}
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRBAC_Forbids(t *testing.T) {
	code, called := runRBAC(t, "user-1")
	if called {
		t.Fatalf("should not reach next handler")
	}
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRBAC_UnknownOrMissingUser(t *testing.T) {
	for _, id := range []string{"", "ghost"} {
		code, called := runRBAC(t, id)
		if called {
			t.Fatalf("should not reach next handler for %q", id)
		}
		if code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %q, got %d", id, code)
		}
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

type stubTokens struct {
	subject string
	err     error
	seen    string
}

func (s *stubTokens) Issue(string) (string, error) { return "", nil }

func (s *stubTokens) Verify(token string) (string, error) {
	s.seen = token
	return s.subject, s.err
}

func runAuth(t *testing.T, tokens *stubTokens, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		if c.Get(ContextKeyUserID) != tokens.subject {
			t.Fatalf("userID not set on echo context")
		}
		if id, ok := domain.SubjectFrom(c.Request().Context()); !ok || id != tokens.subject {
			t.Fatalf("subject not set on request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := &stubTokens{subject: "65a1f0c2e4b0a1b2c3d4e5f6"}
	rec, called := runAuth(t, tokens, "Bearer abc.def.ghi")

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if tokens.seen != "abc.def.ghi" {
		t.Fatalf("verify got %q", tokens.seen)
	}
}

func TestAuthMiddleware_RejectsWithoutVerifying(t *testing.T) {
	headers := map[string]string{
		"missing":      "",
		"wrong scheme": "Token abc",
		"no token":     "Bearer ",
		"lowercase":    "bearer abc",
	}
	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			tokens := &stubTokens{subject: "u1"}
			rec, called := runAuth(t, tokens, header)

			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if tokens.seen != "" {
				t.Fatalf("token verified for malformed header")
			}
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	for _, err := range []error{domain.ErrTokenInvalid, domain.ErrTokenExpired} {
		rec, called := runAuth(t, &stubTokens{err: err}, "Bearer not-a-token")
		if called {
			t.Fatalf("should not reach next")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %v, got %d", err, rec.Code)
		}
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestLoginLimiter_ThrottlesPerIP(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(60, 2)
	l.now = func() time.Time { return now }

	e := echo.New()
	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		h := l.Middleware()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		if err := h(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Fatalf("other IP should not be throttled, got %d", code)
	}

	now = now.Add(time.Second)
	if code := do("10.0.0.1"); code != http.StatusOK {
		t.Fatalf("token should refill after a second, got %d", code)
	}
}

func TestLoginLimiter_Prune(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(60, 1)
	l.now = func() time.Time { return now }

	l.allow("a")
	now = now.Add(11 * time.Minute)
	l.allow("b")
	l.Prune()

	if _, ok := l.visitors["a"]; ok {
		t.Fatalf("idle visitor not pruned")
	}
	if _, ok := l.visitors["b"]; !ok {
		t.Fatalf("active visitor pruned")
	}
}

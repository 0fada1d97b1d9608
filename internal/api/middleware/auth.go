package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

// ContextKeyUserID is the echo.Context key holding the authenticated user id.
const ContextKeyUserID = "userID"

// Auth verifies the bearer token and attaches the subject to both the echo
// context and the request context. It never calls next on failure.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header missing or malformed")
			}

			subject, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token").SetInternal(err)
			}

			c.Set(ContextKeyUserID, subject)
			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithSubject(req.Context(), subject)))

			return next(c)
		}
	}
}

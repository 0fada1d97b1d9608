package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

// RBAC enforces role-based access control. It must run after Auth; the
// caller's role is resolved through the profile service so that role changes
// apply without reissuing tokens.
func RBAC(users ports.UserService, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(ContextKeyUserID).(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
			}

			user, err := users.Profile(c.Request().Context(), userID)
			if err != nil {
				if domain.IsNotFound(err) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
				}
				return err
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

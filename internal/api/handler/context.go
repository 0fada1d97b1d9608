package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

var idRule = validator.New()

// ctxSubject returns the user id injected by the Auth middleware. A missing
// value means the route was mounted without the guard.
func ctxSubject(c echo.Context) (string, error) {
	id, ok := domain.SubjectFrom(c.Request().Context())
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}
	return id, nil
}

// pathID returns the :id path parameter once it is a well-formed ObjectID.
func pathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if err := idRule.Var(id, "required,mongodb"); err != nil {
		return "", domain.NewValidationError("id", "id must be a valid id")
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs the struct rules.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

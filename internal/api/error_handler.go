package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cloudmarket/marketplace-api/internal/api/handler"
	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

type internalErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors once, without leaking details in production.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c, production)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, production bool) (int, any) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		fields := make([]handler.FieldErrorPayload, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			fields = append(fields, handler.FieldErrorPayload{Field: f.Field, Message: f.Message})
		}
		return http.StatusBadRequest, handler.ErrorResponse{Error: ve.Error(), Fields: fields}
	}

	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, handler.ErrorResponse{Error: "Invalid credentials."}
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, handler.ErrorResponse{Error: "invalid or expired token"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, handler.ErrorResponse{Error: "access forbidden"}
	case domain.IsNotFound(err):
		return http.StatusNotFound, handler.ErrorResponse{Error: notFoundMessage(err)}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, handler.ErrorResponse{Error: "user already exists"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	body := internalErrorResponse{Error: "internal server error"}
	if !production {
		body.Detail = err.Error()
	}
	return http.StatusInternalServerError, body
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrProductNotFound):
		return domain.ErrProductNotFound.Error()
	default:
		return domain.ErrOfferNotFound.Error()
	}
}

package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/domain/apperr"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/access"
)

// classes in match order
var statusByClass = []struct {
	class  error
	status int
}{
	{apperr.ErrUnauthenticated, http.StatusUnauthorized},
	{apperr.ErrForbidden, http.StatusForbidden},
	{apperr.ErrNotFound, http.StatusNotFound},
	{apperr.ErrConflict, http.StatusConflict},
	{apperr.ErrInvalidInput, http.StatusBadRequest},
	{apperr.ErrUpstream, http.StatusBadGateway},
	{apperr.ErrStorage, http.StatusInternalServerError},
}

// toResponse maps any error onto a status and body. Storage and upstream
// failures never leak their cause.
func toResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, ErrorResponse{Error: msg}
	}

	for _, m := range statusByClass {
		if !errors.Is(err, m.class) {
			continue
		}
		switch m.status {
		case http.StatusInternalServerError:
			return m.status, ErrorResponse{Error: "internal server error"}
		case http.StatusBadGateway:
			return m.status, ErrorResponse{Error: "upstream service unavailable"}
		}
		body := ErrorResponse{Error: err.Error()}
		var denied *access.DeniedError
		if errors.As(err, &denied) {
			body.Role = string(denied.Role)
		}
		return m.status, body
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}

// writeError is what handlers return on failure.
func writeError(c echo.Context, err error) error {
	status, body := toResponse(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "status", status, "error", err)
	}
	return c.JSON(status, body)
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

// ErrorHandler is installed as echo's HTTPErrorHandler so errors returned by
// middleware share the handlers' error shape.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		status, _ := toResponse(err)
		_ = c.NoContent(status)
		return
	}
	_ = writeError(c, err)
}

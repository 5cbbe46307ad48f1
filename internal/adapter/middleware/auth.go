package middleware

import (
	"github.com/labstack/echo/v4"

	"loanlink-backend/internal/usecase/access"
)

const callerKey = "loanlink.caller"

// RequireRole authenticates the bearer token, checks the caller's current role
// against req and stores the caller on the context for handlers.
func RequireRole(gate *access.Gate, req access.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := access.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			caller, err := gate.Check(c.Request().Context(), token, req)
			if err != nil {
				return err
			}
			c.Set(callerKey, caller)
			return next(c)
		}
	}
}

// CallerFrom returns the caller stored by RequireRole.
func CallerFrom(c echo.Context) (access.Caller, bool) {
	caller, ok := c.Get(callerKey).(access.Caller)
	return caller, ok
}

// CallerScope is the idempotency scope for authenticated routes.
func CallerScope(c echo.Context) string {
	caller, _ := CallerFrom(c)
	return caller.Email
}

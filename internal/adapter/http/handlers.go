package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	mw "loanlink-backend/internal/adapter/middleware"
	"loanlink-backend/internal/domain/apperr"
	"loanlink-backend/internal/usecase/access"
)

// Pinger reports store reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct{ db Pinger }

// NewHandler: db may be nil, then only liveness is reported.
func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			body["status"] = "degraded"
			body["database"] = "unreachable"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["database"] = "ok"
	}
	return c.JSON(http.StatusOK, body)
}

var errNoCaller = apperr.New(apperr.ErrUnauthenticated, "no authenticated caller")

func callerOf(c echo.Context) (access.Caller, error) {
	caller, ok := mw.CallerFrom(c)
	if !ok {
		return access.Caller{}, errNoCaller
	}
	return caller, nil
}

// pageParams reads ?limit=&skip=; absent means 0 and the store applies defaults.
func pageParams(c echo.Context) (limit, skip int, err error) {
	read := func(name string) (int, error) {
		raw := c.QueryParam(name)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, apperr.Invalid(name + " must be a non-negative integer")
		}
		return n, nil
	}
	if limit, err = read("limit"); err != nil {
		return 0, 0, err
	}
	if skip, err = read("skip"); err != nil {
		return 0, 0, err
	}
	return limit, skip, nil
}

// emailParam reads an email path segment, which clients may percent-encode.
func emailParam(c echo.Context) string {
	raw := c.Param("email")
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

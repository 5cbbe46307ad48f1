package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"loanlink-backend/internal/logger"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	pendingTTL   = 60 * time.Second
	storeTimeout = 2 * time.Second
)

type captureWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a mutating request retried with
// the same Idempotency-Key. The key is scoped by method, route and scope(c),
// normally the caller's email. Requests without the header pass through.
// 5xx outcomes are not stored so the client can retry.
func Idempotency(rdb *redis.Client, ttl time.Duration, scope func(echo.Context) string) echo.MiddlewareFunc {
	store := replayStore{rdb: rdb, pendingTTL: pendingTTL, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			raw := req.Header.Get(HeaderIdempotencyKey)
			if strings.TrimSpace(raw) == "" {
				return next(c)
			}
			idem, ok := normalizeKey(raw)
			if !ok {
				return reject(c, http.StatusBadRequest, "Idempotency-Key must be a UUID")
			}

			var body []byte
			if req.Body != nil {
				var err error
				if body, err = io.ReadAll(req.Body); err != nil {
					return reject(c, http.StatusBadRequest, "unreadable request body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			fp := fingerprint(body)
			key := replayKey(req.Method, c.Path(), scope(c), idem)

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			claimed, err := store.claim(ctx, key, fp)
			if err != nil {
				logger.ErrorContext(req.Context(), "idempotency store unavailable", "error", err)
				return reject(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !claimed {
				return replayOrConflict(ctx, c, store, key, fp)
			}

			w := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = w
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may be gone by now
			bg, cancelBg := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelBg()
			if w.status >= http.StatusInternalServerError {
				if err := store.release(bg, key); err != nil {
					logger.WarnContext(req.Context(), "idempotency release failed", "key", key, "error", err)
				}
				return nil
			}
			err = store.commit(bg, key, replay{
				Status:      w.status,
				ContentType: w.Header().Get(echo.HeaderContentType),
				Body:        w.buf.Bytes(),
				Fingerprint: fp,
				At:          time.Now().UTC(),
			})
			if err != nil {
				logger.WarnContext(req.Context(), "idempotency commit failed", "key", key, "error", err)
			}
			return nil
		}
	}
}

func replayOrConflict(ctx context.Context, c echo.Context, store replayStore, key, fp string) error {
	prev, err := store.load(ctx, key)
	switch {
	case errors.Is(err, errNoReplay):
		// the pending marker expired between claim and load
		return reject(c, http.StatusConflict, "request is already in progress")
	case err != nil:
		logger.WarnContext(c.Request().Context(), "idempotency entry unreadable", "key", key, "error", err)
		return reject(c, http.StatusServiceUnavailable, "idempotency store unavailable")
	}
	if prev.Fingerprint != fp {
		return reject(c, http.StatusConflict, "Idempotency-Key reused with a different body")
	}
	if !prev.done() {
		return reject(c, http.StatusConflict, "request is already in progress")
	}
	ct := prev.ContentType
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	c.Response().Header().Set(HeaderReplayed, "true")
	return c.Blob(prev.Status, ct, prev.Body)
}

func reject(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

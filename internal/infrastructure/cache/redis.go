package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"loanlink-backend/internal/domain/apperr"
)

const pingTimeout = 5 * time.Second

// OpenRedis connects and pings; used only for idempotency replay.
// addr is host:port or a redis:// (rediss://) URL, whose db path wins over db.
func OpenRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	opts, err := options(addr, db)
	if err != nil {
		return nil, err
	}
	r := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, apperr.Upstream("redis", err)
	}
	return r, nil
}

func options(addr string, db int) (*redis.Options, error) {
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: addr, DB: db}, nil
}

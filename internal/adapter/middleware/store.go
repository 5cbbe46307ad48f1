package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// replay is what is kept per key: a pending marker while the handler runs,
// then the response to hand back on retries.
type replay struct {
	Pending     bool      `json:"pending"`
	Status      int       `json:"status,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	At          time.Time `json:"at"`
}

func (r replay) done() bool { return !r.Pending && r.Status != 0 }

type replayStore struct {
	rdb *redis.Client
	// pending markers expire on their own if the process dies mid-request
	pendingTTL time.Duration
	ttl        time.Duration
}

var errNoReplay = errors.New("no stored response")

func fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// normalizeKey accepts any UUID spelling, including 32-char hex, and returns
// its canonical form.
func normalizeKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func replayKey(method, route, scope, key string) string {
	return strings.Join([]string{"loanlink", "idem", strings.ToLower(scope), strings.ToLower(method), route, key}, ":")
}

// claim marks key as pending; false when someone already holds it.
func (s replayStore) claim(ctx context.Context, key, fp string) (bool, error) {
	payload, err := json.Marshal(replay{Pending: true, Fingerprint: fp, At: time.Now().UTC()})
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, s.pendingTTL).Result()
}

func (s replayStore) load(ctx context.Context, key string) (replay, error) {
	var r replay
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return r, errNoReplay
	}
	if err != nil {
		return r, err
	}
	err = json.Unmarshal(raw, &r)
	return r, err
}

func (s replayStore) commit(ctx context.Context, key string, r replay) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

func (s replayStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	redisx "github.com/kirinyoku/shootplan/internal/redis"
	"github.com/redis/go-redis/v9"
)

const (
	idemLockValue    = "LOCK"
	idemResultPrefix = "RES:"
)

// Idempotency scopes.
const (
	IdemBookings  = "bookings"
	IdemInquiries = "inquiries"
)

// KeyIdem namespaces a client-supplied Idempotency-Key by the operation it
// guards.
func KeyIdem(scope, idemKey string) string {
	return redisx.KeyIdem(scope, idemKey)
}

// IdempotencyStore remembers the response of a create request under the
// client's Idempotency-Key. A key is first locked while the request runs and
// then replaced by the serialized result.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *IdempotencyStore) AcquireLock(ctx context.Context, key string, lockTTL time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, idemLockValue, lockTTL).Result()
}

func (s *IdempotencyStore) SaveResult(ctx context.Context, key string, jsonPayload string) error {
	val := idemResultPrefix + jsonPayload
	return s.rdb.Set(ctx, key, val, s.ttl).Err()
}

func (s *IdempotencyStore) GetResult(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if payload, ok := strings.CutPrefix(v, idemResultPrefix); ok {
		return payload, true, nil
	}

	return "", false, nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

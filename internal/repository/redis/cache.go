package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/shootplan/internal/domain"
	redisx "github.com/kirinyoku/shootplan/internal/redis"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	defaultDayTTL          = 30 * time.Second
	defaultPhotographerTTL = 5 * time.Minute

	// generationTTL must outlive any single day load.
	generationTTL = time.Hour
)

// Stores a day snapshot only if the day was not invalidated since the
// loader started.
//
// KEYS[1] = snapshot key, KEYS[2] = generation key
// ARGV[1] = generation seen before loading, ARGV[2] = payload, ARGV[3] = ttl_ms
//
// Returns 1 when stored, 0 when the snapshot is already stale.
const luaSetIfGeneration = `
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

// Cache holds read snapshots of the schedule. Snapshots are dropped after
// every committed write and whenever another session announces a change, so
// the TTL only bounds staleness when an announcement is lost.
type Cache struct {
	rdb             *redis.Client
	sf              singleflight.Group
	setIfGen        *redis.Script
	dayTTL          time.Duration
	photographerTTL time.Duration
}

func New(client *redis.Client) *Cache {
	return &Cache{
		rdb:             client,
		setIfGen:        redis.NewScript(luaSetIfGeneration),
		dayTTL:          defaultDayTTL,
		photographerTTL: defaultPhotographerTTL,
	}
}

func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	s, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, err
	}

	return s, true, nil
}

func (c *Cache) SetString(
	ctx context.Context,
	key string,
	val string,
	ttl time.Duration,
) error {
	return c.rdb.Set(ctx, key, val, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return c.rdb.Del(ctx, keys...).Err()
}

func GetJSON[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var zero T

	s, ok, err := c.GetString(ctx, key)
	if err != nil || !ok {
		return zero, ok, err
	}

	var out T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return zero, false, err
	}

	return out, true, nil
}

func SetJSON(
	ctx context.Context,
	c *Cache,
	key string,
	val any,
	ttl time.Duration,
) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}

	return c.SetString(ctx, key, string(b), ttl)
}

func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if v, ok, err := GetJSON[T](ctx, c, key); err != nil || ok {
		return v, err
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		if v2, ok2, err2 := GetJSON[T](ctx, c, key); err2 != nil || ok2 {
			return v2, err2
		}
		v3, err3 := loader(ctx)
		if err3 != nil {
			return nil, err3
		}
		_ = SetJSON(ctx, c, key, v3, ttl)
		return v3, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := vAny.(T)
	if !ok {
		var zero T
		return zero, errors.New("type assertion failed")
	}

	return v, nil
}

// DayBookings returns the bookings overlapping the given local day, loading
// them on a miss. A load that overlaps InvalidateDays for the same day is
// returned to its callers but never stored, so a snapshot read before a
// commit cannot outlive that commit's invalidation.
func (c *Cache) DayBookings(
	ctx context.Context,
	day string,
	loader func(ctx context.Context) ([]domain.Booking, error),
) ([]domain.Booking, error) {
	const op = "repository.redis.Cache.DayBookings"

	key := redisx.KeyDayBookings(day)
	if v, ok, err := GetJSON[[]domain.Booking](ctx, c, key); err != nil || ok {
		return v, err
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok, err := GetJSON[[]domain.Booking](ctx, c, key); err != nil || ok {
			return v, err
		}

		gen, err := c.generation(ctx, day)
		if err != nil {
			return nil, err
		}

		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}

		_, _ = c.storeDay(ctx, day, gen, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	v, ok := vAny.([]domain.Booking)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected cached value %T", op, vAny)
	}

	return v, nil
}

func (c *Cache) generation(ctx context.Context, day string) (string, error) {
	gen, err := c.rdb.Get(ctx, redisx.KeyDayGeneration(day)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// storeDay writes the snapshot of day unless its generation moved past gen.
func (c *Cache) storeDay(ctx context.Context, day, gen string, v []domain.Booking) (bool, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	stored, err := c.setIfGen.Run(
		ctx,
		c.rdb,
		[]string{redisx.KeyDayBookings(day), redisx.KeyDayGeneration(day)},
		gen, string(b), c.dayTTL.Milliseconds(),
	).Int()
	if err != nil {
		return false, err
	}

	return stored == 1, nil
}

func (c *Cache) Photographers(
	ctx context.Context,
	loader func(ctx context.Context) ([]domain.Photographer, error),
) ([]domain.Photographer, error) {
	return GetOrSetJSON(ctx, c, redisx.KeyPhotographers(), c.photographerTTL, loader)
}

// InvalidateDays drops the snapshots of days and bumps their generations so
// that loads already in flight do not store what they read.
func (c *Cache) InvalidateDays(ctx context.Context, days ...string) error {
	if len(days) == 0 {
		return nil
	}

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range days {
			gen := redisx.KeyDayGeneration(d)
			pipe.Incr(ctx, gen)
			pipe.Expire(ctx, gen, generationTTL)
			pipe.Del(ctx, redisx.KeyDayBookings(d))
		}
		return nil
	})

	for _, d := range days {
		c.sf.Forget(redisx.KeyDayBookings(d))
	}

	return err
}

func (c *Cache) InvalidatePhotographers(ctx context.Context) error {
	return c.Del(ctx, redisx.KeyPhotographers())
}

package redis

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	redisx "github.com/kirinyoku/shootplan/internal/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return rdb
}

func TestToInt(t *testing.T) {
	assert.Equal(t, int64(3), toInt(int64(3)))
	assert.Equal(t, int64(4), toInt(4))
	assert.Equal(t, int64(5), toInt(float64(5)))
	assert.Equal(t, int64(6), toInt("6"))
	assert.Equal(t, int64(0), toInt(nil))
}

func TestCache_DayBookings(t *testing.T) {
	ctx := context.Background()
	c := New(testClient(t))
	day := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = c.InvalidateDays(ctx, day) })

	var loads atomic.Int32
	want := []domain.Booking{{
		ID:     uuid.New(),
		Start:  time.Date(2099, 1, 1, 9, 0, 0, 0, time.UTC),
		End:    time.Date(2099, 1, 1, 11, 0, 0, 0, time.UTC),
		Status: domain.BookingReserved,
	}}
	loader := func(context.Context) ([]domain.Booking, error) {
		loads.Add(1)
		return want, nil
	}

	got, err := c.DayBookings(ctx, day, loader)
	require.NoError(t, err)
	assert.Equal(t, want[0].ID, got[0].ID)

	_, err = c.DayBookings(ctx, day, loader)
	require.NoError(t, err)
	assert.Equal(t, int32(1), loads.Load())

	require.NoError(t, c.InvalidateDays(ctx, day))
	_, err = c.DayBookings(ctx, day, loader)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestCache_DayBookingsInvalidatedDuringLoadIsNotStored(t *testing.T) {
	ctx := context.Background()
	c := New(testClient(t))
	day := "test-" + uuid.NewString()
	t.Cleanup(func() { _ = c.Del(ctx, redisx.KeyDayBookings(day), redisx.KeyDayGeneration(day)) })

	stale := []domain.Booking{{ID: uuid.New(), Status: domain.BookingReserved}}
	fresh := []domain.Booking{{ID: uuid.New(), Status: domain.BookingEditing}}

	// the loader reads, then a writer commits and invalidates before the
	// read is stored
	got, err := c.DayBookings(ctx, day, func(ctx context.Context) ([]domain.Booking, error) {
		require.NoError(t, c.InvalidateDays(ctx, day))
		return stale, nil
	})
	require.NoError(t, err)
	assert.Equal(t, stale[0].ID, got[0].ID)

	_, ok, err := c.GetString(ctx, redisx.KeyDayBookings(day))
	require.NoError(t, err)
	assert.False(t, ok)

	var loads atomic.Int32
	got, err = c.DayBookings(ctx, day, func(context.Context) ([]domain.Booking, error) {
		loads.Add(1)
		return fresh, nil
	})
	require.NoError(t, err)
	assert.Equal(t, fresh[0].ID, got[0].ID)
	assert.Equal(t, int32(1), loads.Load())

	// an undisturbed load is stored
	got, err = c.DayBookings(ctx, day, func(context.Context) ([]domain.Booking, error) {
		loads.Add(1)
		return stale, nil
	})
	require.NoError(t, err)
	assert.Equal(t, fresh[0].ID, got[0].ID)
	assert.Equal(t, int32(1), loads.Load())
}

func TestCache_LoaderErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := New(testClient(t))
	boom := errors.New("boom")

	_, err := c.Photographers(ctx, func(context.Context) ([]domain.Photographer, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, err := c.GetString(ctx, redisx.KeyPhotographers())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	s := NewIdempotencyStore(testClient(t), time.Minute)
	key := KeyIdem(IdemInquiries, uuid.NewString())
	t.Cleanup(func() { _ = s.Release(ctx, key) })

	ok, err := s.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := s.GetResult(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SaveResult(ctx, key, `{"lead_id":"x"}`))
	payload, found, err := s.GetResult(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"lead_id":"x"}`, payload)
}

func TestSlidingWindowLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewSlidingWindowLimiter(testClient(t), "test", 2, time.Minute)
	ip := "ip:" + uuid.NewString()

	for i := 1; i <= 2; i++ {
		d, err := l.Allow(ctx, ip)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, int64(i), d.Hits)
	}

	// rejected hits are not recorded
	for i := 0; i < 3; i++ {
		d, err := l.Allow(ctx, ip)
		require.NoError(t, err)
		assert.False(t, d.Allowed)
		assert.Equal(t, int64(2), d.Hits)
		assert.Greater(t, d.RetryAfter, time.Duration(0))
		assert.LessOrEqual(t, d.RetryAfter, time.Minute)
	}
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	ctx := context.Background()
	l := NewSlidingWindowLimiter(testClient(t), "test", 1, time.Minute)
	ip := "ip:" + uuid.NewString()

	start := time.Now()
	l.now = func() time.Time { return start }

	d, err := l.Allow(ctx, ip)
	require.NoError(t, err)
	require.True(t, d.Allowed)

	l.now = func() time.Time { return start.Add(30 * time.Second) }
	d, err = l.Allow(ctx, ip)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.InDelta(t, float64(30*time.Second), float64(d.RetryAfter), float64(time.Second))

	l.now = func() time.Time { return start.Add(61 * time.Second) }
	d, err = l.Allow(ctx, ip)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

package redis

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/broadcast"
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

	rdb, err := New(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return rdb
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "shootplan:v1:bookings:day:2025-06-15", KeyDayBookings("2025-06-15"))
	assert.Equal(t, "shootplan:v1:bookings:day:2025-06-15:gen", KeyDayGeneration("2025-06-15"))
	assert.Equal(t, "shootplan:v1:rl:intake:ip:10.0.0.1", KeyRateLimit("intake", "ip:10.0.0.1"))
	assert.Equal(t, "shootplan:v1:idem:inquiries:abc", KeyIdem("inquiries", "abc"))
	assert.Equal(t, "shootplan:v1:sessions", ChannelSessions())
}

func TestOpener_NilClientDegrades(t *testing.T) {
	_, err := Opener(nil, "")(context.Background())
	assert.ErrorIs(t, err, broadcast.ErrNoTransport)
}

func TestSessionsPubSub_CrossSession(t *testing.T) {
	rdb := testClient(t)
	channel := "shootplan:test:" + uuid.NewString()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a := broadcast.New(Opener(rdb, channel), logger, broadcast.Config{})
	b := broadcast.New(Opener(rdb, channel), logger, broadcast.Config{})
	defer a.Close()
	defer b.Close()

	var fromA, own atomic.Int32
	b.Subscribe(broadcast.EntityCreated, func(broadcast.Message) { fromA.Add(1) })
	a.Subscribe(broadcast.EntityCreated, func(broadcast.Message) { own.Add(1) })
	<-a.Ready()
	<-b.Ready()
	require.Equal(t, broadcast.StateActive, b.State())

	// give both subscriptions time to reach the server
	time.Sleep(200 * time.Millisecond)

	a.Publish(broadcast.EntityCreated, broadcast.EntityRef{Entity: "booking", ID: "x"})

	require.Eventually(t, func() bool { return fromA.Load() == 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), own.Load())
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/kirinyoku/shootplan/internal/broadcast"
	"github.com/redis/go-redis/v9"
)

// SessionsPubSub carries broadcast envelopes over a Redis pub/sub channel.
// Redis delivers to whoever is subscribed at publish time and keeps nothing,
// which matches the bus contract.
type SessionsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewSessionsPubSub(rdb *redis.Client, channel string) *SessionsPubSub {
	if channel == "" {
		channel = ChannelSessions()
	}
	return &SessionsPubSub{
		rdb:     rdb,
		channel: channel,
	}
}

// Opener checks the server is reachable before handing the transport to the
// bus, so an unreachable Redis degrades the bus instead of failing sends.
func Opener(rdb *redis.Client, channel string) broadcast.Opener {
	return func(ctx context.Context) (broadcast.Transport, error) {
		const op = "redis.Opener"

		if rdb == nil {
			return nil, fmt.Errorf("%s:%w", op, broadcast.ErrNoTransport)
		}

		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}

		return NewSessionsPubSub(rdb, channel), nil
	}
}

func (p *SessionsPubSub) Send(ctx context.Context, data []byte) error {
	return p.rdb.Publish(ctx, p.channel, data).Err()
}

func (p *SessionsPubSub) Receive(ctx context.Context, deliver func([]byte)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(
		redis.WithChannelSize(256),
		redis.WithChannelHealthCheckInterval(30*time.Second),
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			deliver([]byte(m.Payload))
		}
	}
}

// Close leaves the client open; it belongs to the application.
func (p *SessionsPubSub) Close() error {
	return nil
}

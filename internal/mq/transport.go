package mq

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kirinyoku/shootplan/internal/broadcast"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "shootplan.sessions"

	// defaultDialTimeout bounds a dial whose context carries no deadline.
	defaultDialTimeout = 30 * time.Second
)

// FanoutTransport publishes envelopes to a non-durable fanout exchange and
// reads them from an exclusive, auto-deleted queue owned by this session.
// The queue disappears with the connection, so nothing is kept for sessions
// that are not listening.
type FanoutTransport struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string

	mu        sync.Mutex
	closeOnce sync.Once
}

func Opener(url, exchange string) broadcast.Opener {
	return func(ctx context.Context) (broadcast.Transport, error) {
		return Dial(ctx, url, exchange)
	}
}

// Dial connects to the broker. The TCP dial and AMQP handshake are bounded
// by ctx's deadline.
func Dial(ctx context.Context, url, exchange string) (*FanoutTransport, error) {
	const op = "mq.Dial"

	if exchange == "" {
		exchange = DefaultExchange
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	timeout := defaultDialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, fmt.Errorf("%s: %w", op, context.DeadlineExceeded)
		}
	}

	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(timeout)})
	if err != nil {
		return nil, fmt.Errorf("%s: dial rabbitmq: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: open channel: %w", op, err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, false, true, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: declare exchange: %w", op, err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: declare queue: %w", op, err)
	}

	if err := ch.QueueBind(q.Name, "", exchange, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: bind queue: %w", op, err)
	}

	return &FanoutTransport{conn: conn, ch: ch, exchange: exchange, queue: q.Name}, nil
}

func (t *FanoutTransport) Send(ctx context.Context, data []byte) error {
	// amqp channels are not safe for concurrent publishing
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.ch.PublishWithContext(ctx, t.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		Body:         data,
	})
}

func (t *FanoutTransport) Receive(ctx context.Context, deliver func([]byte)) error {
	const op = "mq.FanoutTransport.Receive"

	deliveries, err := t.ch.ConsumeWithContext(ctx, t.queue, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			deliver(d.Body)
		}
	}
}

func (t *FanoutTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		_ = t.ch.Close()
		err = t.conn.Close()
	})
	return err
}

package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClosed      = errors.New("broadcast transport closed")
	ErrNoTransport = errors.New("no broadcast transport configured")
)

// Transport is the message-passing substrate shared by all sessions.
// Delivery is best effort: no queueing for absent listeners, no replay and
// no acknowledgement.
type Transport interface {
	Send(ctx context.Context, data []byte) error
	// Receive calls deliver for every message seen on the substrate until
	// ctx is done or the transport is closed. Messages sent by the same
	// session may be delivered back to it.
	Receive(ctx context.Context, deliver func([]byte)) error
	Close() error
}

// Opener connects a session to its substrate. It is called once, on its
// own goroutine, after the first use of the bus. It must honour ctx.
type Opener func(ctx context.Context) (Transport, error)

type State int32

const (
	StateUninitialized State = iota
	StateOpening
	StateActive
	StateDegraded
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateOpening:
		return "opening"
	case StateActive:
		return "active"
	case StateDegraded:
		return "degraded"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

type Handler func(Message)

type Config struct {
	SessionID   string
	OutboxSize  int
	InboxSize   int
	OpenTimeout time.Duration
	SendTimeout time.Duration
}

type subscription struct {
	id  uint64
	typ Type
	fn  Handler
}

// Bus is one session's view of the cross-session notification channel.
// Handlers run on a single goroutine, one message at a time, and never see
// messages published by their own session.
type Bus struct {
	id     string
	open   Opener
	logger *slog.Logger
	cfg    Config

	initOnce  sync.Once
	closeOnce sync.Once
	state     atomic.Int32
	transport Transport

	mu     sync.RWMutex
	subs   []subscription
	nextID uint64

	outbox chan []byte
	inbox  chan Message
	ready  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(open Opener, logger *slog.Logger, cfg Config) *Bus {
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}

	if cfg.OutboxSize <= 0 {
		cfg.OutboxSize = 256
	}

	if cfg.InboxSize <= 0 {
		cfg.InboxSize = 256
	}

	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 3 * time.Second
	}

	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 2 * time.Second
	}

	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Bus{
		id:     cfg.SessionID,
		open:   open,
		logger: logger.With("component", "broadcast", "session_id", cfg.SessionID),
		cfg:    cfg,
		outbox: make(chan []byte, cfg.OutboxSize),
		inbox:  make(chan Message, cfg.InboxSize),
		ready:  make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (b *Bus) SessionID() string { return b.id }

func (b *Bus) State() State { return State(b.state.Load()) }

// Ready is closed once the substrate opened, failed to open, or the bus was
// closed. It stays open until the bus is first used.
func (b *Bus) Ready() <-chan struct{} { return b.ready }

// Publish stamps and hands a message to the substrate without waiting for
// it. Messages published while the substrate is opening are queued and sent
// once it is up. When the bus is degraded or closed the call does nothing.
func (b *Bus) Publish(typ Type, payload any) {
	b.init()

	if st := b.State(); st != StateActive && st != StateOpening {
		return
	}

	var raw json.RawMessage
	if payload != nil {
		p, err := json.Marshal(payload)
		if err != nil {
			b.logger.Warn("broadcast payload not encodable", "type", typ, "error", err)
			return
		}
		raw = p
	}

	data, err := json.Marshal(Message{
		Type:      typ,
		Payload:   raw,
		Timestamp: time.Now().UnixMilli(),
		SenderID:  b.id,
	})
	if err != nil {
		b.logger.Warn("broadcast envelope not encodable", "type", typ, "error", err)
		return
	}

	select {
	case b.outbox <- data:
	default:
		b.logger.Debug("broadcast outbox full, message dropped", "type", typ)
	}
}

// Subscribe registers fn for messages of typ, or of every type when typ is
// All. The returned function removes the registration and may be called more
// than once.
func (b *Bus) Subscribe(typ Type, fn Handler) func() {
	b.init()

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, typ: typ, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Bus) Close() error {
	var err error

	b.closeOnce.Do(func() {
		// a bus closed before first use never opens its transport
		b.initOnce.Do(func() { close(b.ready) })
		b.state.Store(int32(StateClosed))
		b.cancel()
		b.wg.Wait()

		if b.transport != nil {
			err = b.transport.Close()
		}
	})

	return err
}

func (b *Bus) init() {
	b.initOnce.Do(func() {
		if b.open == nil {
			b.state.Store(int32(StateDegraded))
			b.logger.Warn("broadcast unavailable, running local-only", "error", ErrNoTransport)
			close(b.ready)
			return
		}

		b.state.Store(int32(StateOpening))
		b.wg.Add(1)
		go b.connect()
	})
}

// connect opens the substrate off the caller's goroutine so that the first
// Publish or Subscribe never waits on the network.
func (b *Bus) connect() {
	defer b.wg.Done()
	defer close(b.ready)

	ctx, cancel := context.WithTimeout(b.ctx, b.cfg.OpenTimeout)
	t, err := b.open(ctx)
	cancel()

	if err != nil {
		if b.state.CompareAndSwap(int32(StateOpening), int32(StateDegraded)) {
			b.logger.Warn("broadcast unavailable, running local-only", "error", err)
			b.drainOutbox()
		}
		return
	}

	// a Close that ran while the opener was busy fails the swap below and
	// releases t once this goroutine returns
	b.transport = t
	if !b.state.CompareAndSwap(int32(StateOpening), int32(StateActive)) {
		return
	}

	b.wg.Add(3)
	go b.sendLoop()
	go b.receiveLoop()
	go b.dispatchLoop()
}

func (b *Bus) drainOutbox() {
	for {
		select {
		case <-b.outbox:
		default:
			return
		}
	}
}

func (b *Bus) sendLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.ctx.Done():
			return
		case data := <-b.outbox:
			ctx, cancel := context.WithTimeout(b.ctx, b.cfg.SendTimeout)
			if err := b.transport.Send(ctx, data); err != nil {
				b.logger.Warn("broadcast send failed", "error", err)
			}
			cancel()
		}
	}
}

func (b *Bus) receiveLoop() {
	defer b.wg.Done()

	err := b.transport.Receive(b.ctx, b.deliver)
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Warn("broadcast receive stopped", "error", err)
	}
}

func (b *Bus) deliver(data []byte) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		b.logger.Debug("broadcast message not decodable", "error", err)
		return
	}

	if m.SenderID == b.id {
		return
	}

	select {
	case b.inbox <- m:
	default:
		b.logger.Debug("broadcast inbox full, message dropped", "type", m.Type, "sender_id", m.SenderID)
	}
}

func (b *Bus) dispatchLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.ctx.Done():
			return
		case m := <-b.inbox:
			b.dispatch(m)
		}
	}
}

func (b *Bus) dispatch(m Message) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.typ == All || s.typ == m.Type {
			handlers = append(handlers, s.fn)
		}
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.invoke(h, m)
	}
}

func (b *Bus) invoke(h Handler, m Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("broadcast handler panicked", "type", m.Type, "panic", r)
		}
	}()

	h(m)
}

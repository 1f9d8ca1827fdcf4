package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kirinyoku/shootplan/internal/broadcast"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
)

const (
	listenerBuffer    = 32
	invalidateTimeout = 2 * time.Second
)

// sessionWatcher is a bus session of its own. It sees what this process
// publishes as well as what other processes publish, drops cached views the
// other processes made stale, and fans every message out to stream clients.
type sessionWatcher struct {
	bus    *broadcast.Bus
	cache  *redisrepo.Cache
	local  string
	logger *slog.Logger

	mu          sync.Mutex
	listeners   map[chan broadcast.Message]struct{}
	closed      bool
	unsubscribe func()
}

// newSessionWatcher subscribes to bus. local is the session id of the bus the
// services publish on; their own writes already invalidated the cache.
func newSessionWatcher(
	bus *broadcast.Bus,
	cache *redisrepo.Cache,
	local string,
	logger *slog.Logger,
) *sessionWatcher {
	w := &sessionWatcher{
		bus:       bus,
		cache:     cache,
		local:     local,
		logger:    logger.With("component", "session_watcher"),
		listeners: make(map[chan broadcast.Message]struct{}),
	}
	w.unsubscribe = bus.Subscribe(broadcast.All, w.handle)
	return w
}

func (w *sessionWatcher) handle(m broadcast.Message) {
	if w.cache != nil && m.SenderID != w.local {
		w.invalidate(m)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.listeners {
		select {
		case ch <- m:
		default:
			// slow client; it re-reads on the next message anyway
		}
	}
}

func (w *sessionWatcher) invalidate(m broadcast.Message) {
	var ref broadcast.EntityRef
	if err := m.Decode(&ref); err != nil {
		w.logger.Debug("undecodable payload", "type", m.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	if len(ref.Days) > 0 {
		if err := w.cache.InvalidateDays(ctx, ref.Days...); err != nil {
			w.logger.Warn("invalidate days", "days", ref.Days, "error", err)
		}
	}

	if ref.Entity == "photographer" || m.Type == broadcast.DataRefreshed {
		if err := w.cache.InvalidatePhotographers(ctx); err != nil {
			w.logger.Warn("invalidate photographers", "error", err)
		}
	}
}

// Listen registers a stream client. The channel is closed when the watcher
// closes. The returned func unregisters it and is safe to call more than once.
func (w *sessionWatcher) Listen() (<-chan broadcast.Message, func()) {
	ch := make(chan broadcast.Message, listenerBuffer)

	w.mu.Lock()
	if w.closed {
		close(ch)
	} else {
		w.listeners[ch] = struct{}{}
	}
	w.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.listeners, ch)
			w.mu.Unlock()
		})
	}
}

func (w *sessionWatcher) listening() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

// Close ends every stream by closing its channel, then leaves the bus.
func (w *sessionWatcher) Close() error {
	w.unsubscribe()

	w.mu.Lock()
	if !w.closed {
		w.closed = true
		for ch := range w.listeners {
			close(ch)
			delete(w.listeners, ch)
		}
	}
	w.mu.Unlock()

	return w.bus.Close()
}

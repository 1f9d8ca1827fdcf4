package broadcast

import (
	"context"
	"sync"
)

// Hub is an in-process substrate: every session opened from the same hub
// receives what any of them sends. A peer that is not keeping up loses
// messages instead of slowing the sender down.
type Hub struct {
	mu     sync.RWMutex
	peers  map[*hubPeer]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 256
	}
	return &Hub{
		peers:  make(map[*hubPeer]struct{}),
		buffer: buffer,
	}
}

// Opener joins a new peer to the hub for every session that opens it.
func (h *Hub) Opener() Opener {
	return func(ctx context.Context) (Transport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return h.join(), nil
	}
}

func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

func (h *Hub) join() *hubPeer {
	p := &hubPeer{
		hub:  h,
		ch:   make(chan []byte, h.buffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.peers[p] = struct{}{}
	h.mu.Unlock()

	return p
}

func (h *Hub) leave(p *hubPeer) {
	h.mu.Lock()
	delete(h.peers, p)
	h.mu.Unlock()
}

func (h *Hub) fanout(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for p := range h.peers {
		select {
		case p.ch <- data:
		default:
		}
	}
}

type hubPeer struct {
	hub  *Hub
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func (p *hubPeer) Send(ctx context.Context, data []byte) error {
	select {
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	p.hub.fanout(append([]byte(nil), data...))
	return nil
}

func (p *hubPeer) Receive(ctx context.Context, deliver func([]byte)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return nil
		case data := <-p.ch:
			deliver(data)
		}
	}
}

func (p *hubPeer) Close() error {
	p.once.Do(func() {
		p.hub.leave(p)
		close(p.done)
	})
	return nil
}

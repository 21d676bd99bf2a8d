// Package notify fans reflection-ready events out to live listeners.
// Delivery is best effort: a listener whose send fails is dropped and the
// event is never retried.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Listener is one connected client. Send must be safe to call from the hub's
// broadcasting goroutine and should return an error when the connection is
// gone.
type Listener interface {
	Send(event any) error
}

// Hub is an injected registry of live listeners, owned by the process and
// passed explicitly to whatever triggers notifications.
type Hub struct {
	mu        sync.Mutex
	listeners map[Listener]struct{}
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		listeners: make(map[Listener]struct{}),
		logger:    logger,
	}
}

func (h *Hub) Add(l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners[l] = struct{}{}
}

func (h *Hub) Remove(l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, l)
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// Broadcast sends event to every connected listener. Failed listeners are
// removed; errors are logged and swallowed.
func (h *Hub) Broadcast(event any) {
	h.mu.Lock()
	targets := make([]Listener, 0, len(h.listeners))
	for l := range h.listeners {
		targets = append(targets, l)
	}
	h.mu.Unlock()

	for _, l := range targets {
		if err := l.Send(event); err != nil {
			h.logger.Debug("dropping notification listener", zap.Error(err))
			h.Remove(l)
		}
	}
}

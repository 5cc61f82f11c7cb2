// Package ws pushes matching events to connected clients: a job entering
// the index, a match being computed. Consumers use it to refresh
// recommendation views without polling.
package ws

import (
	"log"
	"sync"
)

// Hub fans broadcast messages out to every connected client. All
// membership changes go through Run; the mutex only guards reads from
// other goroutines.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	join      chan *Client
	leave     chan *Client
	broadcast chan []byte

	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		join:      make(chan *Client, 64),
		leave:     make(chan *Client, 64),
		broadcast: make(chan []byte, 1024),
		logger:    logger,
	}
}

// Run owns the client set. Start it once, in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.join:
			h.add(c)
		case c := <-h.leave:
			h.remove(c)
		case msg := <-h.broadcast:
			h.fanout(msg)
		}
	}
}

func (h *Hub) add(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logf("client connected, now %d", n)
}

func (h *Hub) remove(c *Client) {
	if c == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logf("client disconnected, now %d", n)
}

// fanout delivers msg to every client. A client whose send buffer is full
// is treated as dead and kicked rather than allowed to stall the hub.
func (h *Hub) fanout(msg []byte) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- msg:
		default:
			h.leave <- c
		}
	}
	if len(targets) > 0 {
		h.logf("event delivered to %d clients", len(targets))
	}
}

func (h *Hub) Register(c *Client) {
	if h == nil {
		return
	}
	h.join <- c
}

func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	h.leave <- c
}

// Broadcast queues msg for delivery. It never blocks the caller; when the
// queue is full the event is dropped.
func (h *Hub) Broadcast(msg []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logf("event dropped, broadcast queue full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

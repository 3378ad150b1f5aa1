package events

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// Hub fans events out to connected websocket clients. Publish never blocks:
// events land on a buffered channel and are dropped with a log line when the
// buffer is full. Slow or dead connections are unregistered on write failure.
type Hub struct {
	mu     sync.RWMutex
	conns  map[*websocket.Conn]struct{}
	events chan Event
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]struct{}),
		events: make(chan Event, 256),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		_ = conn.Close()
		delete(h.conns, conn)
	}
}

func (h *Hub) Publish(e Event) {
	select {
	case h.events <- e:
	default:
		log.Printf("events: buffer full, dropping %s", e.Type)
	}
}

// Run drains the event buffer until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-h.events:
			h.broadcast(e)
		}
	}
}

func (h *Hub) broadcast(e Event) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.WriteJSON(e); err != nil {
			h.Unregister(c)
		}
	}
}

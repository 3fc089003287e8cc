// Package realtime fans server events out to connected WebSocket clients.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const EventNewContact = "new-contact"

// Publisher is the event sink services depend on.
type Publisher interface {
	Publish(event string, data any)
}

// Conn is the part of a WebSocket connection the hub uses.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type client struct {
	conn Conn
	send chan []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	queueLen int
	log      *logger.Logger
}

// NewHub returns a hub whose clients each buffer up to queueLen messages.
func NewHub(queueLen int, log *logger.Logger) *Hub {
	if queueLen < 1 {
		queueLen = 1
	}
	return &Hub{
		clients:  make(map[*client]struct{}),
		queueLen: queueLen,
		log:      log.WithComponent("realtime"),
	}
}

// Publish queues the event for every client without blocking. A client whose
// queue is full misses the event.
func (h *Hub) Publish(event string, data any) {
	msg, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error("encode event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("client queue full, event dropped", "event", event)
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve registers conn and blocks until the peer goes away.
func (h *Hub) Serve(conn Conn) {
	c := &client{conn: conn, send: make(chan []byte, h.queueLen)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.log.Debug("client connected", "clients", h.Clients())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("write failed", "error", err)
				// Drain until unregistered so Publish never blocks on us.
				for range c.send {
				}
				return
			}
		}
	}()

	// Inbound frames are ignored; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, c)
	close(c.send)
	h.mu.Unlock()

	<-done
	_ = conn.Close()
	h.log.Debug("client disconnected", "clients", h.Clients())
}

// Handler upgrades the request and serves it on the hub.
func (h *Hub) Handler() fiber.Handler {
	upgrade := websocket.New(func(c *websocket.Conn) {
		h.Serve(c)
	})
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return upgrade(c)
	}
}

// Discard is a Publisher that drops every event.
type Discard struct{}

func (Discard) Publish(string, any) {}

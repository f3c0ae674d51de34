// Package realtime provides per-table change subscriptions over
// websockets. Events carry only the table name; subscribers react by
// re-fetching that resource, mirroring how the remote backend's change
// channels behave.
package realtime

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-faster/jx"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans table-change events out to all connected subscribers. A slow
// subscriber is disconnected instead of blocking the rest.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	closed   bool
	upgrader websocket.Upgrader
	lg       *zap.Logger

	subscribers metric.Int64UpDownCounter
	broadcasts  metric.Int64Counter
}

// NewHub creates an empty hub.
func NewHub(lg *zap.Logger) *Hub {
	if lg == nil {
		lg = zap.NewNop()
	}
	meter := otel.Meter("bookshop.realtime")
	subscribers, _ := meter.Int64UpDownCounter("realtime.subscribers")
	broadcasts, _ := meter.Int64Counter("realtime.broadcasts")
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		lg:          lg,
		subscribers: subscribers,
		broadcasts:  broadcasts,
	}
}

// ServeHTTP upgrades the request and streams change events until the
// client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.lg.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.subscribers.Add(r.Context(), 1)

	go h.writeLoop(c)
	h.readLoop(c)
	h.subscribers.Add(r.Context(), -1)
}

// Broadcast notifies every subscriber that a table changed.
func (h *Hub) Broadcast(table string) {
	event := encodeChange(table, time.Now())
	h.broadcasts.Add(context.Background(), 1)

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- event:
		default:
			// Subscriber is not keeping up; drop it.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// Close disconnects all subscribers and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
	c.conn.Close()
}

// readLoop discards inbound frames; the channel is one-way. Its real job
// is detecting disconnects.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// encodeChange builds the change event payload.
func encodeChange(table string, at time.Time) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("event")
	e.Str("change")
	e.FieldStart("table")
	e.Str(table)
	e.FieldStart("at")
	e.Str(at.UTC().Format(time.RFC3339))
	e.ObjEnd()
	return e.Bytes()
}

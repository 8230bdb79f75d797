// Package ws hosts the broadcast hub behind /dice/ws: every connected
// client sees every published result, including the publisher's own.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/hertz-contrib/websocket"

	"dicehall/internal/domain/message"
)

// conn is the subset of the websocket connection the hub uses; it keeps the
// fan-out logic testable without a live upgrade.
type conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type client struct {
	conn conn
	// mu serializes writes: broadcasts arrive from every reader goroutine.
	mu sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

type Hub struct {
	upgrader websocket.HertzUpgrader

	mu      sync.Mutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.HertzUpgrader{
			CheckOrigin: func(_ *app.RequestContext) bool { return true },
		},
		clients: map[string]*client{},
	}
}

// Serve upgrades one request and pumps its frames until the peer goes away.
func (h *Hub) Serve(_ context.Context, ctx *app.RequestContext) {
	username := string(ctx.Query("username"))
	err := h.upgrader.Upgrade(ctx, func(c *websocket.Conn) {
		h.pump(username, c)
	})
	if err != nil {
		log.Printf("ws: upgrade failed for %q: %v", username, err)
	}
}

// pump registers the connection and relays its frames: pings are answered
// with a pong on the same connection, everything else is broadcast verbatim
// to every client.
func (h *Hub) pump(username string, c conn) {
	id := uuid.NewString()
	cl := &client{conn: c}

	h.mu.Lock()
	h.clients[id] = cl
	h.mu.Unlock()
	log.Printf("ws: %q connected (%s)", username, id)

	defer func() {
		h.mu.Lock()
		delete(h.clients, id)
		h.mu.Unlock()
		_ = c.Close()
		log.Printf("ws: %q disconnected (%s)", username, id)
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		var hb message.Heartbeat
		if json.Unmarshal(data, &hb) == nil && hb.Type == "ping" {
			pong, _ := json.Marshal(message.PongFrame())
			if err := cl.write(pong); err != nil {
				return
			}
			continue
		}

		h.Broadcast(data)
	}
}

// Broadcast sends one frame to every connected client. Write failures drop
// only the failing client's frame; its own reader tears it down.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	targets := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		targets = append(targets, cl)
	}
	h.mu.Unlock()

	for _, cl := range targets {
		if err := cl.write(data); err != nil {
			log.Printf("ws: broadcast write failed: %v", err)
		}
	}
}

// Connected reports the number of live connections.
func (h *Hub) Connected() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Package wsclient implements the client side of the broadcast channel on a
// gorilla websocket connection.
package wsclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/message"
)

const channelPath = "/dice/ws"

// Channel is a live duplex connection to the broadcast hub. Writes are
// serialized; the keeper and the submission pipeline share the handle.
type Channel struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Dial connects to the hub of the given server base URL, carrying the
// display name as the connection identity.
func Dial(ctx context.Context, baseURL, username string) (*Channel, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + channelPath
	q := u.Query()
	q.Set("username", username)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial channel: %w", err)
	}
	return &Channel{conn: conn}, nil
}

// Publish sends a result onto the channel; the hub fans it out to every
// connection, this one included.
func (c *Channel) Publish(_ context.Context, msg message.ResultMessage) error {
	if err := c.writeJSON(msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Ping sends one keepalive frame.
func (c *Channel) Ping(_ context.Context) error {
	if err := c.writeJSON(message.PingFrame()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Receive blocks for the next inbound frame. Once the connection is gone
// the error wraps ErrChannelClosed and the channel is unusable.
func (c *Channel) Receive(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrChannelClosed)
	}
	return data, nil
}

func (c *Channel) Close() error {
	return c.conn.Close()
}

func (c *Channel) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

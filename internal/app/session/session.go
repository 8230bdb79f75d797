// Package session owns one live dice session: the inbound channel loop that
// renders results as they arrive, the periodic keepalive, and the
// latest-rendered-view slot.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/app/render"
	"dicehall/internal/app/submit"
	"dicehall/internal/domain/message"
)

// DefaultHeartbeatInterval is the keepalive period while the channel is
// open.
const DefaultHeartbeatInterval = 60 * time.Second

type Session struct {
	Channel ports.DuplexChannel
	Submit  submit.UseCase
	Render  render.UseCase
	// HeartbeatInterval overrides the keepalive period; zero means the
	// default.
	HeartbeatInterval time.Duration
	// Present receives every rendered view; nil drops them after storing.
	Present func(render.View)

	mu     sync.Mutex
	latest render.View
	seen   bool
}

// Run consumes the inbound channel until it closes or the context ends.
// Frames arrive in order and are rendered as they come; heartbeats are
// consumed silently, malformed frames logged and skipped. Channel closure
// is terminal and returned.
func (s *Session) Run(ctx context.Context) error {
	for {
		data, err := s.Channel.Receive(ctx)
		if err != nil {
			if errors.Is(err, ports.ErrChannelClosed) {
				return err
			}
			return fmt.Errorf("receive: %w", err)
		}

		msg, heartbeat, err := message.DecodeFrame(data)
		if err != nil {
			log.Printf("session: dropping malformed frame: %v", err)
			continue
		}
		if heartbeat {
			continue
		}

		view, err := s.Render.Execute(*msg)
		if err != nil {
			log.Printf("session: dropping unrenderable result: %v", err)
			continue
		}
		s.store(view)
		if s.Present != nil {
			s.Present(view)
		}
	}
}

// KeepAlive pings the channel on the heartbeat interval until the context
// ends or the channel is gone.
func (s *Session) KeepAlive(ctx context.Context) error {
	interval := s.HeartbeatInterval
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Channel.Ping(ctx); err != nil {
				return fmt.Errorf("keepalive: %w", err)
			}
		}
	}
}

// SubmitText runs one submission through the pipeline.
func (s *Session) SubmitText(ctx context.Context, text string) error {
	return s.Submit.Execute(ctx, text)
}

// Latest returns the most recently rendered view, if any. Last render wins.
func (s *Session) Latest() (render.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.seen
}

// Close tears the channel down.
func (s *Session) Close() error {
	return s.Channel.Close()
}

func (s *Session) store(view render.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = view
	s.seen = true
}

package wsclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/message"
)

// echoHub upgrades /dice/ws and echoes every frame back.
func echoHub(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dice/ws" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("username") == "" {
			http.Error(w, "missing username", http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
}

func TestChannelPublishAndReceive(t *testing.T) {
	srv := echoHub(t)
	defer srv.Close()

	ch, err := Dial(context.Background(), srv.URL, "alice")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ch.Close()

	out := message.ResultMessage{
		Command: "r", Result: json.RawMessage(`["1d6",4,[4]]`),
		Username: "alice", IP: "1.2.3.4", Time: "10:30:00",
	}
	if err := ch.Publish(context.Background(), out); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	data, err := ch.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	msg, heartbeat, err := message.DecodeFrame(data)
	if err != nil || heartbeat {
		t.Fatalf("DecodeFrame: msg=%v heartbeat=%v err=%v", msg, heartbeat, err)
	}
	if msg.Command != "r" || msg.Username != "alice" {
		t.Fatalf("got echoed message %+v", msg)
	}
}

func TestChannelPingIsAHeartbeatFrame(t *testing.T) {
	srv := echoHub(t)
	defer srv.Close()

	ch, err := Dial(context.Background(), srv.URL, "alice")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ch.Close()

	if err := ch.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	data, err := ch.Receive(context.Background())
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	_, heartbeat, err := message.DecodeFrame(data)
	if err != nil || !heartbeat {
		t.Fatalf("ping did not round-trip as a heartbeat: %s", data)
	}
}

func TestChannelReceiveAfterCloseIsTerminal(t *testing.T) {
	srv := echoHub(t)
	defer srv.Close()

	ch, err := Dial(context.Background(), srv.URL, "alice")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	_ = ch.Close()

	_, err = ch.Receive(context.Background())
	if !errors.Is(err, ports.ErrChannelClosed) {
		t.Fatalf("got err %v, want ErrChannelClosed", err)
	}
}

func TestDialRejectsUnknownScheme(t *testing.T) {
	if _, err := Dial(context.Background(), "ftp://example.com", "alice"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

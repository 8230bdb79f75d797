// Package message defines the wire contract shared by the client, the roll
// service and the broadcast channel: the fixed-arity request, the tagged
// result, and the decoder that turns a tagged result into an explicit
// variant.
package message

import (
	"encoding/json"

	"dicehall/internal/domain/command"
)

// Request is the canonical submission payload. It always carries exactly
// six argument slots; unfilled slots are empty strings, never absent, and
// both the roll service and the decoders depend on that fixed arity.
type Request struct {
	Command  string `json:"command"`
	A1       string `json:"a1"`
	A2       string `json:"a2"`
	A3       string `json:"a3"`
	A4       string `json:"a4"`
	A5       string `json:"a5"`
	A6       string `json:"a6"`
	Username string `json:"username"`
	IP       string `json:"ip"`
	Time     string `json:"time"`
}

// NewRequest shapes a classification plus provenance into a Request.
func NewRequest(c command.Classification, username, ip, timestamp string) Request {
	return Request{
		Command:  c.Token,
		A1:       c.Args[0],
		A2:       c.Args[1],
		A3:       c.Args[2],
		A4:       c.Args[3],
		A5:       c.Args[4],
		A6:       c.Args[5],
		Username: username,
		IP:       ip,
		Time:     timestamp,
	}
}

// Args returns the six argument slots in order.
func (r Request) Args() [command.ArgSlots]string {
	return [command.ArgSlots]string{r.A1, r.A2, r.A3, r.A4, r.A5, r.A6}
}

// ResultMessage is the tagged result the roll service returns and the
// channel distributes. Result is kept raw until decoded because its shape
// depends on the tag. The provenance fields are echoed from the originating
// request, never computed by the receiver.
type ResultMessage struct {
	Command  string          `json:"command"`
	Result   json.RawMessage `json:"result"`
	Username string          `json:"username"`
	IP       string          `json:"ip"`
	Time     string          `json:"time"`
}

// Heartbeat is the content-free keepalive frame either side may send.
type Heartbeat struct {
	Type string `json:"type"`
}

// PingFrame is the outbound heartbeat payload.
func PingFrame() Heartbeat { return Heartbeat{Type: "ping"} }

// PongFrame answers an inbound ping.
func PongFrame() Heartbeat { return Heartbeat{Type: "pong"} }

// DecodeFrame inspects one inbound channel frame. Heartbeats are detected
// before any result decoding and reported with a nil message; they are
// never an error, however sparse the frame looks otherwise.
func DecodeFrame(data []byte) (*ResultMessage, bool, error) {
	var probe struct {
		Type    string `json:"type"`
		Command string `json:"command"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, false, ErrMalformedResult
	}
	if probe.Type == "ping" || probe.Type == "pong" {
		return nil, true, nil
	}

	var msg ResultMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, false, ErrMalformedResult
	}
	return &msg, false, nil
}

package ports

import (
	"context"

	"dicehall/internal/domain/message"
)

// CommandLog is the client-side boundary to the log endpoint. The call is
// awaited but its failure is never fatal to a submission.
type CommandLog interface {
	Log(ctx context.Context, req message.Request) error
}

// RollService is the client-side boundary to the roll-computation endpoint.
// A failed call carries the service's human-readable detail in the error.
type RollService interface {
	Roll(ctx context.Context, req message.Request) (message.ResultMessage, error)
}

// ResultPublisher publishes a result onto the broadcast channel.
type ResultPublisher interface {
	Publish(ctx context.Context, msg message.ResultMessage) error
}

// DuplexChannel is the long-lived broadcast connection. Receive blocks for
// the next inbound frame and returns an error wrapping ErrChannelClosed
// once the connection is gone.
type DuplexChannel interface {
	ResultPublisher
	Ping(ctx context.Context) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}

// AddressLookup resolves the caller's public address. Implementations
// degrade to a literal "unknown" marker rather than failing a submission.
type AddressLookup interface {
	Address(ctx context.Context) string
}

package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// ErrChannelClosed indicates the duplex channel is gone. Terminal for
	// the session: callers must surface it and reconnect with identity.
	ErrChannelClosed = errors.New("channel closed")
)

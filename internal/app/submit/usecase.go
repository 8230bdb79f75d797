// Package submit implements the client-side submission pipeline: classify
// the raw input, shape the fixed-arity request, log it, ask the roll
// service for the result, and publish that result onto the channel.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/command"
	"dicehall/internal/domain/message"
)

// ErrInvalidCommand indicates input matching neither the dice grammar nor a
// known command token. No network call is made for it.
var ErrInvalidCommand = errors.New("unrecognized command")

// DefaultDisplayName is used when the player supplies an empty name.
const DefaultDisplayName = "guest"

const timestampLayout = "15:04:05"

type UseCase struct {
	Log         ports.CommandLog
	Roller      ports.RollService
	Channel     ports.ResultPublisher
	Lookup      ports.AddressLookup
	DisplayName string
	Now         func() time.Time
}

// Execute runs one submission end to end. The log call is awaited first but
// its failure never blocks or skips the roll call; the roll response is
// published onto the channel rather than returned for direct rendering, so
// self-originated and peer-originated results render through one path.
func (u UseCase) Execute(ctx context.Context, text string) error {
	c := command.Classify(text)
	if c.Kind == command.KindInvalid {
		return ErrInvalidCommand
	}

	req := message.NewRequest(c, u.displayName(), u.address(ctx), u.timestamp())

	// Best-effort: a dead log endpoint must not cost anyone their roll.
	if err := u.Log.Log(ctx, req); err != nil {
		log.Printf("submit: log command failed: %v", err)
	}

	res, err := u.Roller.Roll(ctx, req)
	if err != nil {
		return fmt.Errorf("roll: %w", err)
	}

	if err := u.Channel.Publish(ctx, res); err != nil {
		return fmt.Errorf("publish result: %w", err)
	}
	return nil
}

func (u UseCase) displayName() string {
	if u.DisplayName == "" {
		return DefaultDisplayName
	}
	return u.DisplayName
}

func (u UseCase) address(ctx context.Context) string {
	if u.Lookup == nil {
		return "unknown"
	}
	return u.Lookup.Address(ctx)
}

func (u UseCase) timestamp() string {
	now := u.Now
	if now == nil {
		now = time.Now
	}
	return now().Format(timestampLayout)
}

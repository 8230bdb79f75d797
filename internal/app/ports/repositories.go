package ports

import (
	"context"
	"time"

	"dicehall/internal/domain/character"
	"dicehall/internal/domain/message"
)

// SheetRepository stores character sheets keyed by PC number.
type SheetRepository interface {
	// Get returns the sheet for a PC, or ErrNotFound.
	Get(ctx context.Context, pc int) (character.Sheet, error)
	// Save upserts the sheet's attributes without touching ones it lacks.
	Save(ctx context.Context, sheet character.Sheet) error
	// Replace drops any existing sheet for the PC and stores this one.
	Replace(ctx context.Context, sheet character.Sheet) error
	// OccupiedIDs lists PC numbers that currently have a sheet.
	OccupiedIDs(ctx context.Context) ([]int, error)
	// PurgeStale removes sheets untouched since the cutoff.
	PurgeStale(ctx context.Context, cutoff time.Time) error
}

// CommandRecord is one logged submission.
type CommandRecord struct {
	Request  message.Request
	LoggedAt time.Time
}

// CommandLogRepository persists the submission audit trail.
type CommandLogRepository interface {
	Append(ctx context.Context, record CommandRecord) error
	ListRecent(ctx context.Context, limit int) ([]CommandRecord, error)
}

// Package sheet manages character-sheet uploads and the occupied-number
// listing.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/character"
)

// ErrBadPCNumber indicates a PC number outside 0..999.
var ErrBadPCNumber = errors.New("pc number out of range")

// retention is how long an untouched sheet survives before an upload purges
// it.
const retention = 30 * 24 * time.Hour

type UploadRequest struct {
	PC        int
	Stats     string
	CreateNew bool
}

type UseCase struct {
	Sheets ports.SheetRepository
	// Tx wraps the purge and the write of one upload; nil runs them
	// unwrapped.
	Tx ports.TxManager
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Upload parses sheet text and stores it. Existing attributes are merged
// unless CreateNew replaces the whole sheet; every upload also purges sheets
// untouched past the retention window. The purge and the write share one
// transaction so a failed upload never loses purged sheets alone.
func (u UseCase) Upload(ctx context.Context, req UploadRequest) error {
	if req.PC < 0 || req.PC > character.MaxPC {
		return fmt.Errorf("%w: %d", ErrBadPCNumber, req.PC)
	}
	attrs, err := character.ParseUpload(req.Stats)
	if err != nil {
		return err
	}
	return u.inTx(ctx, func(ctx context.Context) error {
		return u.store(ctx, req, attrs)
	})
}

func (u UseCase) store(ctx context.Context, req UploadRequest, attrs map[string]int) error {
	if err := u.Sheets.PurgeStale(ctx, u.now().Add(-retention)); err != nil {
		return fmt.Errorf("purge stale sheets: %w", err)
	}

	if req.CreateNew {
		fresh := character.NewSheet(req.PC)
		fresh.Merge(attrs)
		if err := u.Sheets.Replace(ctx, fresh); err != nil {
			return fmt.Errorf("replace sheet: %w", err)
		}
		return nil
	}

	current, err := u.Sheets.Get(ctx, req.PC)
	if errors.Is(err, ports.ErrNotFound) {
		current = character.NewSheet(req.PC)
	} else if err != nil {
		return fmt.Errorf("load sheet: %w", err)
	}
	current.Merge(attrs)
	if err := u.Sheets.Save(ctx, current); err != nil {
		return fmt.Errorf("save sheet: %w", err)
	}
	return nil
}

func (u UseCase) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.Tx == nil {
		return fn(ctx)
	}
	return u.Tx.RunInTx(ctx, fn)
}

// OccupiedIDs lists the PC numbers that currently have a sheet.
func (u UseCase) OccupiedIDs(ctx context.Context) ([]int, error) {
	ids, err := u.Sheets.OccupiedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list occupied ids: %w", err)
	}
	return ids, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

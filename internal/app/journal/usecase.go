// Package journal records every submitted request for the audit trail.
package journal

import (
	"context"
	"fmt"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/message"
)

type UseCase struct {
	Log ports.CommandLogRepository
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

// Execute persists one submission.
func (u UseCase) Execute(ctx context.Context, req message.Request) error {
	record := ports.CommandRecord{Request: req, LoggedAt: u.now()}
	if err := u.Log.Append(ctx, record); err != nil {
		return fmt.Errorf("append command log: %w", err)
	}
	return nil
}

// Recent returns the newest logged submissions, newest first.
func (u UseCase) Recent(ctx context.Context, limit int) ([]ports.CommandRecord, error) {
	return u.Log.ListRecent(ctx, limit)
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

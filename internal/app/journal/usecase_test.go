package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/message"
)

type fakeLogRepo struct {
	records []ports.CommandRecord
	err     error
}

func (f *fakeLogRepo) Append(_ context.Context, record ports.CommandRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeLogRepo) ListRecent(_ context.Context, limit int) ([]ports.CommandRecord, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func TestExecuteStampsAndAppends(t *testing.T) {
	repo := &fakeLogRepo{}
	at := time.Date(2025, 6, 1, 21, 15, 9, 0, time.UTC)
	uc := UseCase{Log: repo, Now: func() time.Time { return at }}

	req := message.Request{Command: "r", A1: "1d6", Username: "alice"}
	if err := uc.Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("got %d records, want 1", len(repo.records))
	}
	if repo.records[0].Request != req {
		t.Fatalf("got request %+v", repo.records[0].Request)
	}
	if !repo.records[0].LoggedAt.Equal(at) {
		t.Fatalf("got timestamp %v, want %v", repo.records[0].LoggedAt, at)
	}
}

func TestExecuteSurfacesRepoError(t *testing.T) {
	boom := errors.New("boom")
	uc := UseCase{Log: &fakeLogRepo{err: boom}}
	err := uc.Execute(context.Background(), message.Request{Command: "r"})
	if !errors.Is(err, boom) {
		t.Fatalf("got err %v, want wrapped boom", err)
	}
}

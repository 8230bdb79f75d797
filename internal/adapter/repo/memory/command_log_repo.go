package memory

import (
	"context"

	"dicehall/internal/app/ports"
)

type CommandLogRepo struct {
	store *Store
}

func NewCommandLogRepo(store *Store) CommandLogRepo {
	return CommandLogRepo{store: store}
}

func (r CommandLogRepo) Append(_ context.Context, record ports.CommandRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.logs = append(r.store.logs, record)
	return nil
}

// ListRecent returns up to limit records, newest first.
func (r CommandLogRepo) ListRecent(_ context.Context, limit int) ([]ports.CommandRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	n := len(r.store.logs)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]ports.CommandRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.store.logs[i])
	}
	return out, nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/character"
)

type SheetRepo struct {
	store *Store
}

func NewSheetRepo(store *Store) SheetRepo {
	return SheetRepo{store: store}
}

func (r SheetRepo) Get(_ context.Context, pc int) (character.Sheet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	sheet, ok := r.store.sheets[pc]
	if !ok {
		return character.Sheet{}, ports.ErrNotFound
	}
	return cloneSheet(sheet), nil
}

func (r SheetRepo) Save(_ context.Context, sheet character.Sheet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	current, ok := r.store.sheets[sheet.PC]
	if !ok {
		current = character.NewSheet(sheet.PC)
	}
	for name, value := range sheet.Attrs {
		current.Attrs[name] = value
	}
	r.store.sheets[sheet.PC] = current
	r.store.touched[sheet.PC] = time.Now()
	return nil
}

func (r SheetRepo) Replace(_ context.Context, sheet character.Sheet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sheets[sheet.PC] = cloneSheet(sheet)
	r.store.touched[sheet.PC] = time.Now()
	return nil
}

func (r SheetRepo) OccupiedIDs(_ context.Context) ([]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ids := make([]int, 0, len(r.store.sheets))
	for pc := range r.store.sheets {
		ids = append(ids, pc)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r SheetRepo) PurgeStale(_ context.Context, cutoff time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for pc, touched := range r.store.touched {
		if touched.Before(cutoff) {
			delete(r.store.sheets, pc)
			delete(r.store.touched, pc)
		}
	}
	return nil
}

// Package memory provides in-process repositories, used in tests and as
// the fallback when no database is configured.
package memory

import (
	"sync"
	"time"

	"dicehall/internal/app/ports"
	"dicehall/internal/domain/character"
)

type Store struct {
	mu      sync.RWMutex
	sheets  map[int]character.Sheet
	touched map[int]time.Time
	logs    []ports.CommandRecord
}

func NewStore() *Store {
	return &Store{
		sheets:  make(map[int]character.Sheet),
		touched: make(map[int]time.Time),
	}
}

// SeedSheet stores a sheet directly, for tests and dev setups.
func (s *Store) SeedSheet(sheet character.Sheet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet.PC] = cloneSheet(sheet)
	s.touched[sheet.PC] = time.Now()
}

// cloneSheet copies the attribute map so callers never share it with the
// store.
func cloneSheet(sheet character.Sheet) character.Sheet {
	out := character.NewSheet(sheet.PC)
	for name, value := range sheet.Attrs {
		out.Attrs[name] = value
	}
	return out
}

// Package character holds the character-sheet aggregate: a PC number plus a
// lower-cased attribute map, with the current_* bookkeeping the roll
// commands mutate.
package character

import "strings"

// MaxPC bounds the PC numbering.
const MaxPC = 999

// Sheet is the attribute sheet for one PC. Attribute names are stored
// lower-cased; san, hp and mp carry current_* mirrors tracking spent
// values against the uploaded maximum.
type Sheet struct {
	PC    int
	Attrs map[string]int
}

// NewSheet returns an empty sheet for a PC.
func NewSheet(pc int) Sheet {
	return Sheet{PC: pc, Attrs: map[string]int{}}
}

// Value looks an attribute up case-insensitively.
func (s Sheet) Value(name string) (int, bool) {
	v, ok := s.Attrs[strings.ToLower(name)]
	return v, ok
}

// Set stores an attribute under its lower-cased name.
func (s Sheet) Set(name string, value int) {
	s.Attrs[strings.ToLower(name)] = value
}

// Current returns the tracked current value of a resource, falling back to
// its maximum when no current_* entry exists yet.
func (s Sheet) Current(name string) int {
	name = strings.ToLower(name)
	if v, ok := s.Attrs["current_"+name]; ok {
		return v
	}
	return s.Attrs[name]
}

// Max returns the uploaded maximum of a resource.
func (s Sheet) Max(name string) int {
	return s.Attrs[strings.ToLower(name)]
}

// AdjustHP applies a signed HP delta clamped to [0, max] and returns the
// resulting current HP.
func (s Sheet) AdjustHP(delta int) int {
	current := clamp(s.Current("hp")+delta, 0, s.Max("hp"))
	s.Set("current_hp", current)
	return current
}

// RestoreSan adds to current sanity, capped at the uploaded maximum and
// floored at zero, and returns the resulting value.
func (s Sheet) RestoreSan(amount int) int {
	current := s.Current("san") + amount
	if current > s.Max("san") {
		current = s.Max("san")
	}
	if current < 0 {
		current = 0
	}
	s.Set("current_san", current)
	return current
}

// SpendSan subtracts a sanity loss, floored at zero, and returns the
// remaining value.
func (s Sheet) SpendSan(reduction int) int {
	current := s.Current("san") - reduction
	if current < 0 {
		current = 0
	}
	s.Set("current_san", current)
	return current
}

// Merge overlays other attributes onto the sheet.
func (s Sheet) Merge(attrs map[string]int) {
	for name, value := range attrs {
		s.Set(name, value)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

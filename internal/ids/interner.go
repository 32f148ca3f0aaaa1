// Package ids maps opaque string identifiers onto dense integer indices,
// stable under insertion order.
package ids

import (
	"strings"

	"clustrace/internal/errs"
)

// Interner assigns each distinct (trimmed) string the next integer index in
// first-appearance order. It never forgets an id and never reassigns one.
type Interner struct {
	indexOf map[string]int
	ids     []string
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{indexOf: make(map[string]int)}
}

// Intern trims raw, returns its existing index if known, or appends it as a
// new entry and returns the freshly assigned index. Fails with
// errs.ErrInvalidID when raw is empty after trimming.
func (in *Interner) Intern(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, errs.ErrInvalidID
	}
	if idx, ok := in.indexOf[trimmed]; ok {
		return idx, nil
	}
	idx := len(in.ids)
	in.ids = append(in.ids, trimmed)
	in.indexOf[trimmed] = idx
	return idx, nil
}

// Len returns the number of distinct ids interned so far.
func (in *Interner) Len() int {
	return len(in.ids)
}

// ID returns the id assigned to index. Panics if index is out of range -
// callers only ever pass indices this Interner itself handed out.
func (in *Interner) ID(index int) string {
	return in.ids[index]
}

// Package action implements the process-wide interned action alphabet
// (spec.md §3 "Action", §5 "Shared resources").
package action

import (
	"fmt"
	"sync"
)

// Action is an interned transition name: S, U, L, R, l2..l4, r2..r4, D<label>,
// E, I, P, or — when composite actions are enabled — a reduce action with its
// dependency label folded in (L<label>, R<label>, r2<label>, ...).
//
// The original implementation relies on pointer identity of interned C
// strings for O(1) history-feature comparisons; in Go, plain string value
// equality already gives the same semantics at a comparable cost, so Action
// is simply a string and Table exists only to give every distinct action
// string a stable, append-only home (spec.md §9 "process-wide interned
// action strings").
type Action string

// Head returns the dispatch byte transition() switches on.
func (a Action) Head() byte {
	if len(a) == 0 {
		return 0
	}
	return a[0]
}

// Depth returns n for l2/l3/l4 and r2/r3/r4, or 0 for any other action.
func (a Action) Depth() int {
	if len(a) < 2 {
		return 0
	}
	switch a.Head() {
	case 'l', 'r':
		d := int(a[1] - '0')
		if d < 2 || d > 4 {
			return 0
		}
		return d
	}
	return 0
}

// Label returns the dependency label folded into a composite reduce action,
// or the label argument of a D action. Empty string if a carries none.
func (a Action) Label() string {
	switch a.Head() {
	case 'D':
		return string(a[1:])
	case 'L', 'R':
		return string(a[1:])
	case 'l', 'r':
		if len(a) > 2 {
			return string(a[2:])
		}
	}
	return ""
}

// Table is a concurrent, append-only string interner. Inserts must happen
// during training/setup; once Freeze is called the table is read-only and
// safe for concurrent lookups across parser instances (spec.md §5).
type Table struct {
	mu     sync.RWMutex
	index  map[Action]struct{}
	frozen bool
}

// NewTable returns an empty, unfrozen action table.
func NewTable() *Table {
	return &Table{index: make(map[Action]struct{}, 64)}
}

// Intern records a and returns the canonical Action value for it. Intern
// panics if the table has been frozen and a is not already present —
// mirroring the teacher's EnumSet, which panics on writes to a frozen set.
func (t *Table) Intern(a Action) Action {
	t.mu.RLock()
	_, ok := t.index[a]
	t.mu.RUnlock()
	if ok {
		return a
	}
	if t.frozen {
		panic(fmt.Sprintf("action: cannot intern %q into a frozen table", a))
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.index[a] = struct{}{}
	return a
}

// Freeze marks the table read-only. Safe to call from multiple sentences'
// drivers concurrently once training setup has completed.
func (t *Table) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
}

// Len reports how many distinct actions have been interned.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.index)
}

// Default is the table used by Make and Intern when no explicit Table is
// threaded through; most callers never need their own.
var Default = NewTable()

// Make builds an action from its base letter and a dependency label,
// folding the label into the action name when composite is true — or
// always, for the "D" base, which only exists to carry labels (mirrors
// the original's MakeAction / mkAction macro).
func Make(table *Table, composite bool, base string, label string) Action {
	if table == nil {
		table = Default
	}
	if composite || base == "D" {
		return table.Intern(Action(base + label))
	}
	return table.Intern(Action(base))
}

// Intern interns a bare action string (S, U, E, I, P, or an already
// label-suffixed composite action) through the default table.
func Intern(raw string) Action {
	return Default.Intern(Action(raw))
}
